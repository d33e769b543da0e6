package http11

import (
	"bytes"
	"math"
	"strings"

	"github.com/yourusername/ripple/pkg/ripple/bytestr"
)

// Parse decodes one HTTP/1.1 request from the start of buf.
//
// buf holds every byte read from the connection so far. Parse never modifies
// it and never copies out of it: the returned Request views buf directly.
//
// Parse returns exactly one of:
//   - a Request, with Remainder holding any bytes after the body
//   - ErrIncomplete, when buf ends before the header block or the body does;
//     append more bytes and call Parse again on the whole buffer
//   - a decode error (ErrInvalidEncoding, ErrMalformedRequestLine,
//     ErrUnsupportedVersion, ErrInvalidMethod, ErrInvalidHeader,
//     ErrInvalidContentLength)
//
// Parse is safe to call concurrently on distinct buffers.
//
// Allocation behavior: 2 allocs/op (Request, header map) for typical requests
func Parse(buf []byte) (*Request, error) {
	return ParseBytes(bytestr.NewBytes(buf))
}

// ParseBytes is Parse over a shared buffer.
func ParseBytes(in bytestr.Bytes) (*Request, error) {
	raw := in.Raw()

	// Request line
	lineEnd := indexCRLF(raw, 0)
	if lineEnd == -1 {
		return nil, ErrIncomplete
	}
	line, err := bytestr.FromUTF8(in.Slice(0, lineEnd))
	if err != nil {
		return nil, ErrInvalidEncoding
	}

	req := &Request{raw: in}
	if err := parseRequestLine(req, line); err != nil {
		return nil, err
	}
	pos := lineEnd + 2 // +2 for \r\n

	// Headers, up to and including the empty line
	for {
		lineEnd = indexCRLF(raw, pos)
		if lineEnd == -1 {
			return nil, ErrIncomplete
		}
		if lineEnd == pos {
			pos += 2
			break
		}

		line, err = bytestr.FromUTF8(in.Slice(pos, lineEnd))
		if err != nil {
			return nil, ErrInvalidEncoding
		}
		if err := parseHeaderLine(&req.Header, line); err != nil {
			return nil, err
		}
		pos = lineEnd + 2
	}

	// Body framing
	contentLength, err := contentLengthOf(&req.Header)
	if err != nil {
		return nil, err
	}

	if contentLength > 0 {
		if len(raw)-pos < contentLength {
			return nil, ErrIncomplete
		}
		req.Body = in.Slice(pos, pos+contentLength)
		pos += contentLength
	}

	req.ContentLength = contentLength
	req.Remainder = in.SliceFrom(pos)
	return req, nil
}

// parseRequestLine parses "METHOD SP PATH SP VERSION" (CRLF already removed).
//
// Allocation behavior: 0 allocs/op
func parseRequestLine(req *Request, line bytestr.ByteStr) error {
	s := line.String()

	// Parse METHOD
	sp := strings.IndexByte(s, ' ')
	if sp == -1 {
		return ErrMalformedRequestLine
	}
	method, err := ParseMethod(line.Bytes().Slice(0, sp).Raw())
	if err != nil {
		return err
	}
	req.Method = method

	// Parse PATH
	rest := sp + 1
	sp = strings.IndexByte(s[rest:], ' ')
	if sp <= 0 {
		return ErrMalformedRequestLine
	}
	req.Path = line.Slice(rest, rest+sp)

	// Parse VERSION
	version := trimSpace(s[rest+sp+1:])
	if version != http11Proto {
		return ErrUnsupportedVersion
	}
	req.Version = HTTP11

	return nil
}

// parseHeaderLine parses "Name: Value" into h.
// The value is trimmed of surrounding spaces and tabs; the name must be a
// non-empty token.
//
// Allocation behavior: 0 allocs/op after the header map exists
func parseHeaderLine(h *Header, line bytestr.ByteStr) error {
	s := line.String()

	colon := strings.IndexByte(s, ':')
	if colon <= 0 {
		return ErrInvalidHeader
	}
	for i := 0; i < colon; i++ {
		if !isTokenChar(s[i]) {
			return ErrInvalidHeader
		}
	}

	start, end := colon+1, len(s)
	for start < end && isSpace(s[start]) {
		start++
	}
	for end > start && isSpace(s[end-1]) {
		end--
	}

	h.set(s[:colon], line.Slice(start, end))
	return nil
}

// Helper functions

// indexCRLF returns the index of the first \r\n at or after from, or -1.
func indexCRLF(b []byte, from int) int {
	i := bytes.Index(b[from:], crlfBytes)
	if i == -1 {
		return -1
	}
	return from + i
}

// contentLengthOf returns the declared body length, 0 when absent.
// The name matches in any case. Differently cased copies must agree.
func contentLengthOf(h *Header) (int, error) {
	n, found := 0, false
	var err error
	h.VisitAll(func(name string, value bytestr.ByteStr) bool {
		if !strings.EqualFold(name, HeaderContentLength) {
			return true
		}
		var v int
		if v, err = parseContentLength(value.String()); err != nil {
			return false
		}
		if found && v != n {
			err = ErrInvalidContentLength
			return false
		}
		n, found = v, true
		return true
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// parseContentLength parses a Content-Length value: one or more ASCII digits.
func parseContentLength(s string) (int, error) {
	if len(s) == 0 {
		return 0, ErrInvalidContentLength
	}

	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, ErrInvalidContentLength
		}
		d := int(c - '0')

		// Prevent overflow
		if n > (math.MaxInt-d)/10 {
			return 0, ErrInvalidContentLength
		}
		n = n*10 + d
	}
	return n, nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

// trimSpace trims leading and trailing spaces and tabs.
func trimSpace(s string) string {
	for len(s) > 0 && isSpace(s[0]) {
		s = s[1:]
	}
	for len(s) > 0 && isSpace(s[len(s)-1]) {
		s = s[:len(s)-1]
	}
	return s
}
