package http11

import (
	"strings"
	"unsafe"
)

type methodKind uint8

const (
	kindGET methodKind = iota
	kindPOST
	kindPUT
	kindDELETE
	kindPATCH
	kindHEAD
	kindOPTIONS
	kindCONNECT
	kindTRACE

	// kindInline holds an extension token of at most InlineMethodMax bytes
	// in Method.inline.
	kindInline

	// kindAllocated holds a longer extension token in Method.ext.
	kindAllocated
)

// Method is an HTTP request method.
//
// The nine standard methods are represented by a tag alone. Any other valid
// token is an extension method, stored inline when it is at most
// InlineMethodMax bytes long and in a heap-allocated string otherwise. The
// representation is chosen once by ParseMethod and never changes.
//
// Construction is canonical: the same text always yields the same
// representation, so == and map keys agree with Equal. The zero value is GET.
type Method struct {
	kind   methodKind
	n      uint8
	inline [InlineMethodMax]byte
	ext    string
}

// Standard methods
var (
	MethodGET     = Method{kind: kindGET}
	MethodPOST    = Method{kind: kindPOST}
	MethodPUT     = Method{kind: kindPUT}
	MethodDELETE  = Method{kind: kindDELETE}
	MethodPATCH   = Method{kind: kindPATCH}
	MethodHEAD    = Method{kind: kindHEAD}
	MethodOPTIONS = Method{kind: kindOPTIONS}
	MethodCONNECT = Method{kind: kindCONNECT}
	MethodTRACE   = Method{kind: kindTRACE}
)

// ParseMethod converts a method token to a Method.
// Known methods match exactly and case-sensitively; anything else goes
// through the token table and becomes an extension method.
// Returns ErrInvalidMethod for an empty token or any non-token byte.
//
// Allocation behavior: 0 allocs/op for known methods and tokens ≤15 bytes
func ParseMethod(src []byte) (Method, error) {
	// Fast path: check length first to reduce comparisons
	switch len(src) {
	case 0:
		return Method{}, ErrInvalidMethod

	case 3: // GET, PUT
		if src[0] == 'G' && src[1] == 'E' && src[2] == 'T' {
			return MethodGET, nil
		}
		if src[0] == 'P' && src[1] == 'U' && src[2] == 'T' {
			return MethodPUT, nil
		}

	case 4: // POST, HEAD
		if src[0] == 'P' && src[1] == 'O' && src[2] == 'S' && src[3] == 'T' {
			return MethodPOST, nil
		}
		if src[0] == 'H' && src[1] == 'E' && src[2] == 'A' && src[3] == 'D' {
			return MethodHEAD, nil
		}

	case 5: // PATCH, TRACE
		if src[0] == 'P' && src[1] == 'A' && src[2] == 'T' && src[3] == 'C' && src[4] == 'H' {
			return MethodPATCH, nil
		}
		if src[0] == 'T' && src[1] == 'R' && src[2] == 'A' && src[3] == 'C' && src[4] == 'E' {
			return MethodTRACE, nil
		}

	case 6: // DELETE
		if src[0] == 'D' && src[1] == 'E' && src[2] == 'L' &&
			src[3] == 'E' && src[4] == 'T' && src[5] == 'E' {
			return MethodDELETE, nil
		}

	case 7: // OPTIONS, CONNECT
		if src[0] == 'O' && src[1] == 'P' && src[2] == 'T' &&
			src[3] == 'I' && src[4] == 'O' && src[5] == 'N' && src[6] == 'S' {
			return MethodOPTIONS, nil
		}
		if src[0] == 'C' && src[1] == 'O' && src[2] == 'N' &&
			src[3] == 'N' && src[4] == 'E' && src[5] == 'C' && src[6] == 'T' {
			return MethodCONNECT, nil
		}
	}

	return parseExtension(src)
}

// ParseMethodString is ParseMethod for a string token.
func ParseMethodString(s string) (Method, error) {
	return ParseMethod(unsafe.Slice(unsafe.StringData(s), len(s)))
}

// MustParseMethod is like ParseMethodString but panics on an invalid token.
// Intended for package-level variables and tests.
func MustParseMethod(s string) Method {
	m, err := ParseMethodString(s)
	if err != nil {
		panic("http11: MustParseMethod(" + s + "): " + err.Error())
	}
	return m
}

func parseExtension(src []byte) (Method, error) {
	if len(src) <= InlineMethodMax {
		m := Method{kind: kindInline, n: uint8(len(src))}
		if !writeChecked(src, m.inline[:]) {
			return Method{}, ErrInvalidMethod
		}
		return m, nil
	}

	buf := make([]byte, len(src))
	if !writeChecked(src, buf) {
		return Method{}, ErrInvalidMethod
	}
	// buf is never written again, so the string may share it.
	return Method{kind: kindAllocated, ext: unsafe.String(&buf[0], len(buf))}, nil
}

// writeChecked maps every byte of src through methodChars into dst.
// It reports false at the first byte outside the token set.
// dst must be at least len(src) long; a shorter dst means the inline
// capacity and the length dispatch disagree, and the index panics.
func writeChecked(src, dst []byte) bool {
	for i, c := range src {
		b := methodChars[c]
		if b == 0 {
			return false
		}
		dst[i] = b
	}
	return true
}

// AsText returns the method token.
//
// Allocation behavior: 0 allocs/op, except 1 for inline extensions
func (m Method) AsText() string {
	switch m.kind {
	case kindGET:
		return methodGETString
	case kindPOST:
		return methodPOSTString
	case kindPUT:
		return methodPUTString
	case kindDELETE:
		return methodDELETEString
	case kindPATCH:
		return methodPATCHString
	case kindHEAD:
		return methodHEADString
	case kindOPTIONS:
		return methodOPTIONSString
	case kindCONNECT:
		return methodCONNECTString
	case kindTRACE:
		return methodTRACEString
	case kindInline:
		return string(m.inline[:m.n])
	default:
		return m.ext
	}
}

// String returns the method token.
func (m Method) String() string {
	return m.AsText()
}

// IsSafe reports whether the method is GET, HEAD, OPTIONS or TRACE.
func (m Method) IsSafe() bool {
	switch m.kind {
	case kindGET, kindHEAD, kindOPTIONS, kindTRACE:
		return true
	}
	return false
}

// IsIdempotent reports whether the method is PUT, DELETE or a safe method.
func (m Method) IsIdempotent() bool {
	switch m.kind {
	case kindPUT, kindDELETE:
		return true
	}
	return m.IsSafe()
}

// IsExtension reports whether the method is not one of the nine standard
// methods.
func (m Method) IsExtension() bool {
	return m.kind >= kindInline
}

// IsInline reports whether the method is an extension stored inline.
func (m Method) IsInline() bool {
	return m.kind == kindInline
}

// Equal reports whether m and o carry the same method text.
func (m Method) Equal(o Method) bool {
	// Construction is canonical: one text has exactly one Method value.
	return m == o
}

// EqualString reports whether the method text is s.
func (m Method) EqualString(s string) bool {
	if m.kind == kindInline {
		return string(m.inline[:m.n]) == s
	}
	return m.AsText() == s
}

// Compare orders methods by their text.
func (m Method) Compare(o Method) int {
	return strings.Compare(m.AsText(), o.AsText())
}
