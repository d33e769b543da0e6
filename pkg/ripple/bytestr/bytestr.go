package bytestr

import (
	"fmt"
	"strings"
	"unicode/utf8"
	"unsafe"
)

// ByteStr is a Bytes value whose contents are known to be valid UTF-8.
//
// String returns a view over the shared storage rather than a copy, so a
// ByteStr sliced out of a request buffer costs no allocation to read.
type ByteStr struct {
	bytes Bytes
}

// NewByteStr returns an empty ByteStr.
func NewByteStr() ByteStr {
	return ByteStr{}
}

// FromStatic wraps a string constant without copying.
func FromStatic(s string) ByteStr {
	return ByteStr{bytes: StaticBytes(s)}
}

// FromString wraps s. Strings are immutable so the storage is shared.
func FromString(s string) ByteStr {
	return FromStatic(s)
}

// FromUTF8 validates b and wraps it.
// It returns ErrInvalidEncoding if b is not valid UTF-8.
func FromUTF8(b Bytes) (ByteStr, error) {
	if !utf8.Valid(b.b) {
		return ByteStr{}, ErrInvalidEncoding
	}
	return ByteStr{bytes: b}, nil
}

// FromUTF8Unchecked wraps b without validating it. The caller attests that b
// is valid UTF-8.
//
// Builds with the rippledebug tag validate anyway and panic on a violation.
func FromUTF8Unchecked(b Bytes) ByteStr {
	return fromUTF8Unchecked(b, debugChecks)
}

func fromUTF8Unchecked(b Bytes, validate bool) ByteStr {
	if validate && !utf8.Valid(b.b) {
		panic(fmt.Sprintf("bytestr: FromUTF8Unchecked with invalid bytes %q", b.b))
	}
	return ByteStr{bytes: b}
}

// String returns the contents as a string sharing the underlying storage.
//
// Allocation behavior: 0 allocs/op
func (s ByteStr) String() string {
	if len(s.bytes.b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(s.bytes.b), len(s.bytes.b))
}

// Bytes returns the shared buffer backing s.
func (s ByteStr) Bytes() Bytes {
	return s.bytes
}

// Len returns the length in bytes.
func (s ByteStr) Len() int {
	return len(s.bytes.b)
}

// IsEmpty reports whether s has zero length.
func (s ByteStr) IsEmpty() bool {
	return len(s.bytes.b) == 0
}

// At returns the byte at index i.
func (s ByteStr) At(i int) byte {
	return s.bytes.b[i]
}

// Slice returns the byte range [lo, hi) as a ByteStr sharing storage.
// Both bounds must fall on rune boundaries; Slice panics otherwise, since the
// result would no longer be valid UTF-8.
func (s ByteStr) Slice(lo, hi int) ByteStr {
	b := s.bytes.b
	if (lo < len(b) && !utf8.RuneStart(b[lo])) || (hi < len(b) && !utf8.RuneStart(b[hi])) {
		panic(fmt.Sprintf("bytestr: slice [%d:%d] splits a UTF-8 sequence", lo, hi))
	}
	return ByteStr{bytes: s.bytes.Slice(lo, hi)}
}

// Equal reports whether s and o hold the same text.
func (s ByteStr) Equal(o ByteStr) bool {
	return s.String() == o.String()
}

// EqualString reports whether s holds the text t.
func (s ByteStr) EqualString(t string) bool {
	return s.String() == t
}

// Compare orders s and o lexicographically by bytes.
func (s ByteStr) Compare(o ByteStr) int {
	return strings.Compare(s.String(), o.String())
}
