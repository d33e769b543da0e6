// Package encoding negotiates and applies HTTP content codings.
package encoding

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
)

// Encoding is a content coding the server can produce.
type Encoding uint8

const (
	// Identity leaves the body unchanged.
	Identity Encoding = iota

	// Gzip compresses with gzip (RFC 1952).
	Gzip

	// Brotli compresses with brotli (RFC 7932).
	Brotli
)

// ErrUnknownEncoding indicates an Encoding value outside the defined set.
var ErrUnknownEncoding = errors.New("encoding: unknown content coding")

// String returns the Content-Encoding token, empty for Identity.
func (e Encoding) String() string {
	switch e {
	case Gzip:
		return "gzip"
	case Brotli:
		return "br"
	default:
		return ""
	}
}

// Negotiate picks the first coding in an Accept-Encoding value that the
// server supports. Codings with q=0 are skipped. Unknown codings are ignored,
// and Identity is returned when nothing matches.
func Negotiate(acceptEncoding string) Encoding {
	for _, item := range strings.Split(acceptEncoding, ",") {
		token, params, _ := strings.Cut(item, ";")
		token = strings.TrimSpace(token)
		if rejected(params) {
			continue
		}
		switch strings.ToLower(token) {
		case "gzip", "x-gzip":
			return Gzip
		case "br":
			return Brotli
		}
	}
	return Identity
}

// rejected reports whether params carries q=0.
func rejected(params string) bool {
	for _, p := range strings.Split(params, ";") {
		k, v, ok := strings.Cut(strings.TrimSpace(p), "=")
		if !ok || !strings.EqualFold(strings.TrimSpace(k), "q") {
			continue
		}
		v = strings.TrimRight(strings.TrimSpace(v), "0")
		return v == "0" || v == "0." || v == ""
	}
	return false
}

var (
	gzipWriterPool = sync.Pool{
		New: func() interface{} {
			return gzip.NewWriter(io.Discard)
		},
	}

	brotliWriterPool = sync.Pool{
		New: func() interface{} {
			return brotli.NewWriterLevel(io.Discard, brotli.DefaultCompression)
		},
	}
)

// Compress returns data encoded with e. Identity returns data itself.
func Compress(e Encoding, data []byte) ([]byte, error) {
	var buf bytes.Buffer

	switch e {
	case Identity:
		return data, nil

	case Gzip:
		zw := gzipWriterPool.Get().(*gzip.Writer)
		defer gzipWriterPool.Put(zw)
		zw.Reset(&buf)
		if _, err := zw.Write(data); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}

	case Brotli:
		bw := brotliWriterPool.Get().(*brotli.Writer)
		defer brotliWriterPool.Put(bw)
		bw.Reset(&buf)
		if _, err := bw.Write(data); err != nil {
			return nil, err
		}
		if err := bw.Close(); err != nil {
			return nil, err
		}

	default:
		return nil, ErrUnknownEncoding
	}

	return buf.Bytes(), nil
}
