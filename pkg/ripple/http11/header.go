package http11

import (
	"strings"

	"github.com/yourusername/ripple/pkg/ripple/bytestr"
)

// Header maps header names to values for a single request.
//
// Names keep the case they were received in and lookups are exact.
// A name received twice keeps only its last value.
//
// Keys and values are zero-copy views into the request buffer and are
// only meaningful while that buffer is unchanged.
type Header struct {
	m map[string]bytestr.ByteStr
}

// set stores value under name, replacing any earlier value.
func (h *Header) set(name string, value bytestr.ByteStr) {
	if h.m == nil {
		h.m = make(map[string]bytestr.ByteStr, 8)
	}
	h.m[name] = value
}

// Get returns the value stored under name, or an empty ByteStr.
//
// Allocation behavior: 0 allocs/op
func (h *Header) Get(name string) bytestr.ByteStr {
	return h.m[name]
}

// Lookup returns the value stored under name and whether it was present.
func (h *Header) Lookup(name string) (bytestr.ByteStr, bool) {
	v, ok := h.m[name]
	return v, ok
}

// GetFold returns the value of a header whose name matches name
// case-insensitively. An exact match wins; otherwise, if several spellings
// were received, which one is returned is unspecified.
func (h *Header) GetFold(name string) (bytestr.ByteStr, bool) {
	if v, ok := h.m[name]; ok {
		return v, true
	}
	for k, v := range h.m {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return bytestr.ByteStr{}, false
}

// Has reports whether a header named name is present.
func (h *Header) Has(name string) bool {
	_, ok := h.m[name]
	return ok
}

// Len returns the number of distinct header names.
func (h *Header) Len() int {
	return len(h.m)
}

// VisitAll calls visitor for each header in unspecified order.
// Iteration stops if visitor returns false.
func (h *Header) VisitAll(visitor func(name string, value bytestr.ByteStr) bool) {
	for k, v := range h.m {
		if !visitor(k, v) {
			return
		}
	}
}
