// Package files reads and persists request bodies under a single root
// directory. It backs the /files/ routes of the server.
package files

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNotFound indicates no regular file exists under the requested name.
	ErrNotFound = errors.New("files: not found")

	// ErrInvalidName indicates a name that is empty, absolute, or escapes the root.
	ErrInvalidName = errors.New("files: invalid file name")

	// ErrNoRoot indicates the store was created without a directory.
	ErrNoRoot = errors.New("files: no directory configured")
)

// Store serves files from a directory fixed at construction.
// It is safe for concurrent use; concurrent writes to the same name race
// at the file system level.
type Store struct {
	root string
}

// New returns a Store rooted at dir. The directory must exist.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, ErrNoRoot
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("files: resolve %q: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("files: open root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("files: root %q is not a directory", abs)
	}
	return &Store{root: abs}, nil
}

// Root returns the absolute root directory.
func (s *Store) Root() string {
	return s.root
}

// Read returns the contents of the file called name.
func (s *Store) Read(name string) ([]byte, error) {
	path, err := s.resolve(name)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("files: stat %q: %w", name, err)
	}
	if !info.Mode().IsRegular() {
		return nil, ErrNotFound
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("files: read %q: %w", name, err)
	}
	return data, nil
}

// Write stores data as the file called name, replacing any existing file.
// The data lands in a temporary file first and is renamed into place, so a
// concurrent Read sees either the old or the new contents.
func (s *Store) Write(name string, data []byte) error {
	path, err := s.resolve(name)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".upload-*")
	if err != nil {
		return fmt.Errorf("files: create %q: %w", name, err)
	}
	tmpName := tmp.Name()

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("files: chmod %q: %w", name, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("files: write %q: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("files: close %q: %w", name, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("files: rename %q: %w", name, err)
	}
	return nil
}

// resolve maps name to a path inside the root.
// Nested names ("a/b") are allowed when the parent directory exists.
func (s *Store) resolve(name string) (string, error) {
	if name == "" || strings.ContainsRune(name, 0) || filepath.IsAbs(name) || !filepath.IsLocal(name) {
		return "", ErrInvalidName
	}
	return filepath.Join(s.root, filepath.FromSlash(name)), nil
}
