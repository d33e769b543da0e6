package http11

// Version is an HTTP protocol version. The decoder accepts only HTTP11;
// the others exist so callers can name what they are rejecting.
type Version uint8

// Protocol versions, encoded as major*10 + minor.
const (
	HTTP09 Version = 9
	HTTP10 Version = 10
	HTTP11 Version = 11
	HTTP2  Version = 20
	HTTP3  Version = 30
)

// Major returns the major version number.
func (v Version) Major() int {
	return int(v) / 10
}

// Minor returns the minor version number.
func (v Version) Minor() int {
	return int(v) % 10
}

// String returns the version as it appears on the wire.
func (v Version) String() string {
	switch v {
	case HTTP09:
		return "HTTP/0.9"
	case HTTP10:
		return "HTTP/1.0"
	case HTTP11:
		return "HTTP/1.1"
	case HTTP2:
		return "HTTP/2.0"
	case HTTP3:
		return "HTTP/3.0"
	default:
		return ""
	}
}
