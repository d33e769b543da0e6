// Package bytestr provides an immutable, cheaply sliceable byte buffer and a
// UTF-8 string view over it.
//
// Both types share their backing storage with every value sliced from them.
// Nothing in this package ever writes to a buffer after construction, so
// values may be handed across goroutines without synchronization. The
// backing array is released by the garbage collector once the last view
// referencing it is dropped.
package bytestr

import (
	"bytes"
	"unsafe"
)

// Bytes is an immutable byte sequence.
//
// Copying a Bytes value copies only the slice header; the payload is shared.
// Slice and SliceFrom return new handles over a sub-range without copying.
//
// Allocation behavior: 0 allocs/op for every method except String and Clone
type Bytes struct {
	b []byte
}

// NewBytes wraps b without copying. The caller hands over ownership and must
// not modify b afterwards.
func NewBytes(b []byte) Bytes {
	return Bytes{b: b}
}

// CopyBytes returns a Bytes holding its own copy of b.
func CopyBytes(b []byte) Bytes {
	if len(b) == 0 {
		return Bytes{}
	}
	c := make([]byte, len(b))
	copy(c, b)
	return Bytes{b: c}
}

// StaticBytes returns a Bytes sharing the storage of s.
// Strings are immutable, so no copy is needed.
func StaticBytes(s string) Bytes {
	if s == "" {
		return Bytes{}
	}
	return Bytes{b: unsafe.Slice(unsafe.StringData(s), len(s))}
}

// Len returns the number of bytes.
func (b Bytes) Len() int {
	return len(b.b)
}

// IsEmpty reports whether the buffer holds zero bytes.
func (b Bytes) IsEmpty() bool {
	return len(b.b) == 0
}

// At returns the byte at index i. It panics if i is out of range.
func (b Bytes) At(i int) byte {
	return b.b[i]
}

// Slice returns the sub-range [lo, hi) sharing the same storage.
func (b Bytes) Slice(lo, hi int) Bytes {
	return Bytes{b: b.b[lo:hi:hi]}
}

// SliceFrom returns the sub-range [lo, Len()) sharing the same storage.
func (b Bytes) SliceFrom(lo int) Bytes {
	return Bytes{b: b.b[lo:]}
}

// Raw returns the underlying bytes without copying.
// The result must be treated as read-only.
func (b Bytes) Raw() []byte {
	return b.b
}

// Clone returns a Bytes with freshly allocated storage, detached from any
// larger buffer this one was sliced from.
func (b Bytes) Clone() Bytes {
	return CopyBytes(b.b)
}

// Equal reports whether both buffers hold the same bytes.
func (b Bytes) Equal(o Bytes) bool {
	return bytes.Equal(b.b, o.b)
}

// String returns a copy of the contents as a string.
func (b Bytes) String() string {
	return string(b.b)
}
