//go:build rippledebug

package bytestr

// debugChecks enables re-validation in FromUTF8Unchecked.
const debugChecks = true
