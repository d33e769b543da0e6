//go:build linux

package socket

import "golang.org/x/sys/unix"

// deferAcceptSeconds bounds how long the kernel holds a connection with no data.
const deferAcceptSeconds = 5

func applyPlatformOptions(fd int, cfg *Config) {
	// QUICKACK is cleared by the kernel after the next ACK; setting it once
	// covers the single request a connection carries.
	if cfg.QuickAck {
		_ = unix.SetsockoptInt(fd, unix.IPPROTO_TCP, unix.TCP_QUICKACK, 1)
	}
}

func applyListenerOptions(fd int, cfg *Config) error {
	if cfg.DeferAccept {
		return unix.SetsockoptInt(fd, unix.IPPROTO_TCP, unix.TCP_DEFER_ACCEPT, deferAcceptSeconds)
	}
	return nil
}
