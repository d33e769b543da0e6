//go:build !unix

package socket

func applyCommon(fd int, cfg *Config) error { return nil }
