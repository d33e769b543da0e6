// Package http11 implements a zero-copy HTTP/1.1 request decoder over an
// in-memory byte buffer, plus the response serialization used by the server.
package http11

// InlineMethodMax is the longest extension method token stored inline in a
// Method value. Longer tokens are heap allocated.
const InlineMethodMax = 15

// HTTP method literals
const (
	methodGETString     = "GET"
	methodPOSTString    = "POST"
	methodPUTString     = "PUT"
	methodDELETEString  = "DELETE"
	methodPATCHString   = "PATCH"
	methodHEADString    = "HEAD"
	methodOPTIONSString = "OPTIONS"
	methodCONNECTString = "CONNECT"
	methodTRACEString   = "TRACE"
)

// Status codes produced by the server.
const (
	StatusOK                      = 200
	StatusCreated                 = 201
	StatusNoContent               = 204
	StatusBadRequest              = 400
	StatusNotFound                = 404
	StatusMethodNotAllowed        = 405
	StatusRequestTimeout          = 408
	StatusPayloadTooLarge         = 413
	StatusInternalServerError     = 500
	StatusNotImplemented          = 501
	StatusServiceUnavailable      = 503
	StatusHTTPVersionNotSupported = 505
)

// Header names consulted by the decoder and the router.
// Get matches the name exactly as received; Content-Length framing and
// GetFold ignore case.
const (
	HeaderContentLength   = "Content-Length"
	HeaderContentType     = "Content-Type"
	HeaderContentEncoding = "Content-Encoding"
	HeaderAcceptEncoding  = "Accept-Encoding"
	HeaderUserAgent       = "User-Agent"
	HeaderHost            = "Host"
	HeaderConnection      = "Connection"
)

// Content types used in responses.
const (
	ContentTypePlain       = "text/plain"
	ContentTypeOctetStream = "application/octet-stream"
	ContentTypeJSON        = "application/json"
)

// Protocol constants
const http11Proto = "HTTP/1.1"

var (
	crlfBytes  = []byte("\r\n")
	colonSpace = []byte(": ")
)
