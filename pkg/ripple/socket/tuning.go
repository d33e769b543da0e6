// Package socket tunes accepted TCP connections and listeners.
//
// Options shared by every unix platform live in tuning_unix.go; Linux-only
// options are in tuning_linux.go. Other platforms get a no-op.
package socket

import (
	"net"
	"syscall"
)

// Config holds socket options. Zero values leave the system default alone.
type Config struct {
	// NoDelay disables Nagle's algorithm (TCP_NODELAY).
	NoDelay bool

	// RecvBuffer sets SO_RCVBUF in bytes.
	RecvBuffer int

	// SendBuffer sets SO_SNDBUF in bytes.
	SendBuffer int

	// QuickAck sends ACKs immediately (TCP_QUICKACK, Linux only).
	QuickAck bool

	// DeferAccept wakes Accept only once data arrives (TCP_DEFER_ACCEPT, Linux only).
	DeferAccept bool

	// KeepAlive enables SO_KEEPALIVE.
	KeepAlive bool
}

// DefaultConfig returns the options used for request/response workloads:
// one small request in, one small response out.
func DefaultConfig() *Config {
	return &Config{
		NoDelay:     true,
		RecvBuffer:  64 * 1024,
		SendBuffer:  64 * 1024,
		QuickAck:    true,
		DeferAccept: true,
		KeepAlive:   false,
	}
}

type syscallConner interface {
	SyscallConn() (syscall.RawConn, error)
}

// Apply sets cfg on an accepted connection. Connections that do not expose
// a raw descriptor (net.Pipe, TLS wrappers) are left untouched.
// Only a TCP_NODELAY failure is reported; the rest is best effort.
func Apply(conn net.Conn, cfg *Config) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	sc, ok := conn.(syscallConner)
	if !ok {
		return nil
	}

	raw, err := sc.SyscallConn()
	if err != nil {
		return err
	}

	var optErr error
	err = raw.Control(func(fd uintptr) {
		if optErr = applyCommon(int(fd), cfg); optErr != nil {
			return
		}
		applyPlatformOptions(int(fd), cfg)
	})
	if err != nil {
		return err
	}
	return optErr
}

// ApplyListener sets listener-level options such as TCP_DEFER_ACCEPT.
// The returned error is informational: the listener stays usable.
func ApplyListener(ln net.Listener, cfg *Config) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	sc, ok := ln.(syscallConner)
	if !ok {
		return nil
	}

	raw, err := sc.SyscallConn()
	if err != nil {
		return err
	}

	var optErr error
	err = raw.Control(func(fd uintptr) {
		optErr = applyListenerOptions(int(fd), cfg)
	})
	if err != nil {
		return err
	}
	return optErr
}
