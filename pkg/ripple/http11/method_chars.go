package http11

// tokenSymbols are the non-alphanumeric bytes allowed in a token (RFC 9110 §5.6.2).
const tokenSymbols = "!#$%&'*+-.^_`|~"

// methodChars maps each byte to itself if it may appear in a method token
// and to 0 otherwise.
var methodChars = func() [256]byte {
	var t [256]byte
	for c := '0'; c <= '9'; c++ {
		t[c] = byte(c)
	}
	for c := 'A'; c <= 'Z'; c++ {
		t[c] = byte(c)
	}
	for c := 'a'; c <= 'z'; c++ {
		t[c] = byte(c)
	}
	for i := 0; i < len(tokenSymbols); i++ {
		t[tokenSymbols[i]] = tokenSymbols[i]
	}
	return t
}()

// isTokenChar reports whether c may appear in a token.
func isTokenChar(c byte) bool {
	return methodChars[c] != 0
}
