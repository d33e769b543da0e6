package bytestr

import "errors"

// ErrInvalidEncoding indicates bytes that are not valid UTF-8.
var ErrInvalidEncoding = errors.New("bytestr: invalid UTF-8 encoding")
