package server

import (
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"

	"github.com/yourusername/ripple/pkg/ripple"
)

// Stats represents server statistics
type Stats struct {
	// Total number of connections accepted
	TotalConnections atomic.Uint64

	// Current number of active connections
	ActiveConnections atomic.Int64

	// Total number of requests answered, errors included
	TotalRequests atomic.Uint64

	// Total number of bytes read
	BytesRead atomic.Uint64

	// Total number of bytes written
	BytesWritten atomic.Uint64

	// Accept and socket failures
	ConnectionErrors atomic.Uint64

	// Requests rejected by the decoder or the size limit
	RequestErrors atomic.Uint64

	// Server start time
	StartTime time.Time
}

// Duration returns the time since the server started
func (s *Stats) Duration() time.Duration {
	return time.Since(s.StartTime)
}

// RequestsPerSecond returns the average requests per second
func (s *Stats) RequestsPerSecond() float64 {
	d := s.Duration().Seconds()
	if d == 0 {
		return 0
	}
	return float64(s.TotalRequests.Load()) / d
}

// StatsSnapshot is the JSON body of GET /stats.
type StatsSnapshot struct {
	TotalConnections  uint64           `json:"total_connections"`
	ActiveConnections int64            `json:"active_connections"`
	TotalRequests     uint64           `json:"total_requests"`
	BytesRead         uint64           `json:"bytes_read"`
	BytesWritten      uint64           `json:"bytes_written"`
	ConnectionErrors  uint64           `json:"connection_errors"`
	RequestErrors     uint64           `json:"request_errors"`
	UptimeSeconds     float64          `json:"uptime_seconds"`
	RequestsPerSecond float64          `json:"requests_per_second"`
	BufferPool        ripple.PoolStats `json:"buffer_pool"`
}

func (s *Stats) snapshot(pool *ripple.BufferPool) StatsSnapshot {
	return StatsSnapshot{
		TotalConnections:  s.TotalConnections.Load(),
		ActiveConnections: s.ActiveConnections.Load(),
		TotalRequests:     s.TotalRequests.Load(),
		BytesRead:         s.BytesRead.Load(),
		BytesWritten:      s.BytesWritten.Load(),
		ConnectionErrors:  s.ConnectionErrors.Load(),
		RequestErrors:     s.RequestErrors.Load(),
		UptimeSeconds:     s.Duration().Seconds(),
		RequestsPerSecond: s.RequestsPerSecond(),
		BufferPool:        pool.Stats(),
	}
}

// MarshalSnapshot encodes the current statistics as JSON.
func (s *Server) MarshalSnapshot() ([]byte, error) {
	return json.Marshal(s.stats.snapshot(s.pool))
}
