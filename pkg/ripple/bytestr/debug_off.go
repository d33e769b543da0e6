//go:build !rippledebug

package bytestr

const debugChecks = false
