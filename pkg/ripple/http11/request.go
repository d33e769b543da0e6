package http11

import (
	"strings"

	"github.com/yourusername/ripple/pkg/ripple/bytestr"
)

// Request is a decoded HTTP/1.1 request.
//
// CRITICAL: Path, Header and Body are zero-copy views into the buffer passed
// to Parse. They stay valid only while the caller leaves that buffer
// unmodified. Call Clone to keep a request beyond that.
type Request struct {
	// Method token
	Method Method

	// Request target exactly as received, e.g. "/search?q=go"
	Path bytestr.ByteStr

	// Always HTTP11 for a successfully parsed request
	Version Version

	// Headers (last value wins for a repeated name)
	Header Header

	// Body is the ContentLength bytes following the header block.
	// Empty when ContentLength is 0.
	Body bytestr.Bytes

	// ContentLength is the declared body length, 0 if absent.
	ContentLength int

	// Remainder holds the input bytes after the body, unconsumed.
	Remainder bytestr.Bytes

	// raw is the share of the input buffer every view above points into.
	raw bytestr.Bytes
}

// HasBody reports whether the request declared a non-empty body.
func (r *Request) HasBody() bool {
	return r.ContentLength > 0
}

// URIPath returns the path portion of the target, before any '?'.
//
// Allocation behavior: 0 allocs/op
func (r *Request) URIPath() bytestr.ByteStr {
	if i := strings.IndexByte(r.Path.String(), '?'); i >= 0 {
		return r.Path.Slice(0, i)
	}
	return r.Path
}

// RawQuery returns the query portion of the target without the '?', or an
// empty ByteStr if there is none.
//
// Allocation behavior: 0 allocs/op
func (r *Request) RawQuery() bytestr.ByteStr {
	if i := strings.IndexByte(r.Path.String(), '?'); i >= 0 {
		return r.Path.Slice(i+1, r.Path.Len())
	}
	return bytestr.ByteStr{}
}

// Raw returns the input buffer the request was decoded from.
func (r *Request) Raw() bytestr.Bytes {
	return r.raw
}

// Consumed returns the number of input bytes the request occupies,
// request line through body.
func (r *Request) Consumed() int {
	return r.raw.Len() - r.Remainder.Len()
}

// Clone returns a copy of the request that owns its storage and no longer
// depends on the original input buffer.
func (r *Request) Clone() *Request {
	n := r.Consumed()
	own := r.raw.Slice(0, n).Clone()

	clone, err := ParseBytes(own)
	if err != nil {
		// The prefix parsed once already; failing now means the copy differs.
		panic("http11: Clone reparse failed: " + err.Error())
	}
	return clone
}
