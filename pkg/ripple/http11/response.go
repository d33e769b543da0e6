package http11

import (
	"errors"
	"io"
	"strconv"

	"github.com/valyala/bytebufferpool"
)

// ErrResponseWritten indicates a second response on the same writer.
var ErrResponseWritten = errors.New("http11: response already written")

// ResponseWriter serializes a single HTTP/1.1 response.
//
// Wire format:
//
//	HTTP/1.1 <code> <reason>\r\n
//	Content-Type: <type>\r\n        (omitted when empty)
//	<extra headers>\r\n
//	Content-Length: <len>\r\n
//	\r\n
//	<body>
//
// The whole response is assembled in a pooled buffer and handed to the
// underlying writer in one Write call.
type ResponseWriter struct {
	w io.Writer

	// Extra headers in insertion order
	header []headerField

	status       int
	written      bool
	bytesWritten int64
}

type headerField struct {
	name  string
	value string
}

// NewResponseWriter creates a ResponseWriter for w.
func NewResponseWriter(w io.Writer) *ResponseWriter {
	return &ResponseWriter{w: w}
}

// SetHeader sets an extra response header, replacing an earlier value for
// the same name. Content-Type and Content-Length are written by
// WriteResponse and must not be set here.
func (rw *ResponseWriter) SetHeader(name, value string) {
	for i := range rw.header {
		if rw.header[i].name == name {
			rw.header[i].value = value
			return
		}
	}
	rw.header = append(rw.header, headerField{name: name, value: value})
}

// WriteResponse writes the status line, headers and body.
//
// Allocation behavior: 0 allocs/op for common status codes after pool warmup
func (rw *ResponseWriter) WriteResponse(status int, contentType string, body []byte) error {
	if rw.written {
		return ErrResponseWritten
	}
	if status < 100 || status > 999 {
		return ErrInvalidStatusCode
	}
	rw.written = true
	rw.status = status

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	buf.B = append(buf.B, statusLine(status)...)
	if contentType != "" {
		buf.B = appendHeader(buf.B, HeaderContentType, contentType)
	}
	for _, f := range rw.header {
		buf.B = appendHeader(buf.B, f.name, f.value)
	}
	buf.B = append(buf.B, HeaderContentLength...)
	buf.B = append(buf.B, colonSpace...)
	buf.B = strconv.AppendInt(buf.B, int64(len(body)), 10)
	buf.B = append(buf.B, crlfBytes...)
	buf.B = append(buf.B, crlfBytes...)
	buf.B = append(buf.B, body...)

	n, err := rw.w.Write(buf.B)
	rw.bytesWritten += int64(n)
	if err != nil {
		return err
	}

	// If the underlying writer supports Flush, call it
	if flusher, ok := rw.w.(interface{ Flush() error }); ok {
		return flusher.Flush()
	}
	return nil
}

// WriteStatus writes a response with no body.
func (rw *ResponseWriter) WriteStatus(status int) error {
	return rw.WriteResponse(status, "", nil)
}

// WriteText writes a text/plain response.
func (rw *ResponseWriter) WriteText(status int, body []byte) error {
	return rw.WriteResponse(status, ContentTypePlain, body)
}

// Status returns the status code written, or 0 before WriteResponse.
func (rw *ResponseWriter) Status() int {
	return rw.status
}

// Written reports whether a response has been written.
func (rw *ResponseWriter) Written() bool {
	return rw.written
}

// BytesWritten returns the number of bytes handed to the underlying writer.
func (rw *ResponseWriter) BytesWritten() int64 {
	return rw.bytesWritten
}

func appendHeader(dst []byte, name, value string) []byte {
	dst = append(dst, name...)
	dst = append(dst, colonSpace...)
	dst = append(dst, value...)
	return append(dst, crlfBytes...)
}

// statusLines holds pre-compiled status lines for every code with a known
// reason phrase.
var statusLines = func() map[int][]byte {
	m := make(map[int][]byte, len(statusReasons))
	for code, reason := range statusReasons {
		m[code] = buildStatusLine(code, reason)
	}
	return m
}()

// statusLine returns the status line, CRLF included, for code.
//
// Allocation behavior: 0 allocs/op for known codes, 1 alloc/op otherwise
func statusLine(code int) []byte {
	if line, ok := statusLines[code]; ok {
		return line
	}
	return buildStatusLine(code, StatusText(code))
}

// buildStatusLine formats "HTTP/1.1 CODE REASON\r\n".
func buildStatusLine(code int, reason string) []byte {
	return []byte(http11Proto + " " + strconv.Itoa(code) + " " + reason + "\r\n")
}

// StatusText returns the reason phrase for code, or "Unknown".
func StatusText(code int) string {
	if reason, ok := statusReasons[code]; ok {
		return reason
	}
	return "Unknown"
}

// statusReasons lists reason phrases per RFC 9110 §15.
var statusReasons = map[int]string{
	100: "Continue",
	101: "Switching Protocols",

	200: "OK",
	201: "Created",
	202: "Accepted",
	204: "No Content",
	206: "Partial Content",

	301: "Moved Permanently",
	302: "Found",
	304: "Not Modified",
	307: "Temporary Redirect",
	308: "Permanent Redirect",

	400: "Bad Request",
	401: "Unauthorized",
	403: "Forbidden",
	404: "Not Found",
	405: "Method Not Allowed",
	408: "Request Timeout",
	409: "Conflict",
	411: "Length Required",
	413: "Payload Too Large",
	414: "URI Too Long",
	415: "Unsupported Media Type",
	429: "Too Many Requests",
	431: "Request Header Fields Too Large",

	500: "Internal Server Error",
	501: "Not Implemented",
	502: "Bad Gateway",
	503: "Service Unavailable",
	504: "Gateway Timeout",
	505: "HTTP Version Not Supported",
}
