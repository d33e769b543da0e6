package server

import (
	"errors"

	"github.com/yourusername/ripple/pkg/ripple/http11"
)

var (
	// ErrServerClosed is returned by ListenAndServe and Serve after
	// Shutdown or Close.
	ErrServerClosed = errors.New("server: closed")

	// ErrInvalidConfig indicates a negative size or limit in Config.
	ErrInvalidConfig = errors.New("server: invalid config")

	// errRequestTooLarge ends a connection whose request outgrows MaxRequestSize.
	errRequestTooLarge = errors.New("server: request too large")
)

// statusForError maps a read or decode failure to the response status.
func statusForError(err error) int {
	switch {
	case errors.Is(err, errRequestTooLarge):
		return http11.StatusPayloadTooLarge
	case errors.Is(err, http11.ErrUnsupportedVersion):
		return http11.StatusHTTPVersionNotSupported
	default:
		return http11.StatusBadRequest
	}
}

// errorKind labels a decode failure for metrics and logs.
func errorKind(err error) string {
	switch {
	case errors.Is(err, errRequestTooLarge):
		return "too_large"
	case errors.Is(err, http11.ErrInvalidEncoding):
		return "encoding"
	case errors.Is(err, http11.ErrMalformedRequestLine):
		return "request_line"
	case errors.Is(err, http11.ErrUnsupportedVersion):
		return "version"
	case errors.Is(err, http11.ErrInvalidContentLength):
		return "content_length"
	case errors.Is(err, http11.ErrInvalidMethod):
		return "method"
	case errors.Is(err, http11.ErrInvalidHeader):
		return "header"
	default:
		return "other"
	}
}
