package server

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/yourusername/ripple/pkg/ripple"
	"github.com/yourusername/ripple/pkg/ripple/socket"
)

// Config holds server configuration
type Config struct {
	// Addr is the TCP address ListenAndServe listens on
	// Default: "127.0.0.1:4221"
	Addr string

	// Directory is the root for /files/ requests, fixed at startup.
	// Empty disables the /files/ route.
	Directory string

	// ReadTimeout bounds reading the whole request
	// Default: 10 seconds
	ReadTimeout time.Duration

	// WriteTimeout bounds writing the response
	// Default: 10 seconds
	WriteTimeout time.Duration

	// ShutdownTimeout bounds the graceful drain after Serve's context ends
	// Default: 5 seconds
	ShutdownTimeout time.Duration

	// MaxRequestSize is the largest request (head and body) accepted.
	// Larger requests get 413.
	// Default: 1 MB
	MaxRequestSize int

	// MaxConcurrentConnections limits connections served at once
	// 0 means unlimited
	MaxConcurrentConnections int

	// ReadBufferSize is the initial per-connection read buffer
	// Default: 4096 bytes
	ReadBufferSize int

	// Socket tunes accepted connections. nil uses socket.DefaultConfig().
	Socket *socket.Config

	// Logger receives server events. nil discards them.
	Logger *slog.Logger

	// Registerer receives the server's prometheus collectors.
	// nil registers them on a private registry.
	Registerer prometheus.Registerer
}

// DefaultConfig returns the default server configuration
func DefaultConfig() Config {
	return Config{
		Addr:            "127.0.0.1:4221",
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    10 * time.Second,
		ShutdownTimeout: 5 * time.Second,
		MaxRequestSize:  1 << 20,
		ReadBufferSize:  ripple.BufferSize4KB,
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Addr == "" {
		c.Addr = def.Addr
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = def.ReadTimeout
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = def.WriteTimeout
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = def.ShutdownTimeout
	}
	if c.MaxRequestSize == 0 {
		c.MaxRequestSize = def.MaxRequestSize
	}
	if c.ReadBufferSize == 0 {
		c.ReadBufferSize = def.ReadBufferSize
	}
	if c.Socket == nil {
		c.Socket = socket.DefaultConfig()
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	return c
}
