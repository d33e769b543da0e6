package http11

import (
	"errors"

	"github.com/yourusername/ripple/pkg/ripple/bytestr"
)

// Decoder errors - Pre-allocated for zero runtime allocation
var (
	// ErrIncomplete indicates the buffer ends before a complete request.
	// It is not a failure: read more bytes and parse the same buffer again.
	ErrIncomplete = errors.New("http11: incomplete request")

	// ErrInvalidEncoding indicates a request line or header line that is not valid UTF-8
	ErrInvalidEncoding = bytestr.ErrInvalidEncoding

	// ErrMalformedRequestLine indicates the request line is missing a part
	// Request line format: METHOD SP PATH SP VERSION CRLF
	ErrMalformedRequestLine = errors.New("http11: malformed request line")

	// ErrUnsupportedVersion indicates a version token other than HTTP/1.1
	ErrUnsupportedVersion = errors.New("http11: unsupported protocol version")

	// ErrInvalidContentLength indicates Content-Length is not a non-negative integer
	ErrInvalidContentLength = errors.New("http11: invalid Content-Length")

	// ErrInvalidMethod indicates an empty method token or one containing a
	// byte outside the token character set
	ErrInvalidMethod = errors.New("http11: invalid HTTP method")

	// ErrInvalidHeader indicates a header line without a colon or with an
	// empty or whitespace-bearing name
	ErrInvalidHeader = errors.New("http11: invalid HTTP header")
)

// Response errors
var (
	// ErrInvalidStatusCode indicates a status code outside 100-999
	ErrInvalidStatusCode = errors.New("http11: invalid status code")
)
