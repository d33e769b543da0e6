// Package server runs the ripple HTTP/1.1 server: one request per
// connection, decoded with http11.Parse over an accumulating read buffer.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yourusername/ripple/pkg/ripple"
	"github.com/yourusername/ripple/pkg/ripple/files"
	"github.com/yourusername/ripple/pkg/ripple/http11"
	"github.com/yourusername/ripple/pkg/ripple/socket"
)

// Server serves one HTTP/1.1 request per accepted connection.
type Server struct {
	config  Config
	log     *slog.Logger
	files   *files.Store
	pool    *ripple.BufferPool
	metrics *metrics
	stats   Stats

	// Shutdown coordination
	mu       sync.Mutex
	listener net.Listener
	shutdown atomic.Bool
	done     chan struct{}
	wg       sync.WaitGroup

	// Connection tracking
	conns   map[net.Conn]struct{}
	connsMu sync.Mutex

	// Connection semaphore (nil when unlimited)
	connSem chan struct{}
}

// New creates a server from config. Zero fields take DefaultConfig values.
func New(config Config) (*Server, error) {
	if config.MaxRequestSize < 0 || config.ReadBufferSize < 0 || config.MaxConcurrentConnections < 0 {
		return nil, ErrInvalidConfig
	}
	config = config.withDefaults()

	s := &Server{
		config: config,
		log:    config.Logger,
		pool:   ripple.NewBufferPool(),
		done:   make(chan struct{}),
		conns:  make(map[net.Conn]struct{}),
	}
	s.stats.StartTime = time.Now()
	s.metrics = newMetrics(config.Registerer, s.pool)

	if config.Directory != "" {
		store, err := files.New(config.Directory)
		if err != nil {
			return nil, fmt.Errorf("server: %w", err)
		}
		s.files = store
	}

	if config.MaxConcurrentConnections > 0 {
		s.connSem = make(chan struct{}, config.MaxConcurrentConnections)
	}

	return s, nil
}

// Stats returns server statistics
func (s *Server) Stats() *Stats {
	return &s.stats
}

// ListenAndServe listens on Config.Addr and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("server: listen on %s: %w", s.config.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until Shutdown, Close or ctx ends.
// When ctx ends the server drains gracefully for up to
// Config.ShutdownTimeout. Serve waits for every connection to finish and
// then returns ErrServerClosed.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.mu.Lock()
	if s.shutdown.Load() {
		s.mu.Unlock()
		ln.Close()
		return ErrServerClosed
	}
	s.listener = ln
	s.mu.Unlock()
	defer ln.Close()

	if err := socket.ApplyListener(ln, s.config.Socket); err != nil {
		s.log.Debug("listener tuning", "error", err)
	}

	// stop ends the watcher when Serve returns without a shutdown.
	stop := make(chan struct{})
	defer close(stop)

	go func() {
		select {
		case <-ctx.Done():
			sctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
			defer cancel()
			if err := s.Shutdown(sctx); err != nil {
				s.log.Warn("shutdown deadline exceeded, connections closed", "error", err)
			}
		case <-s.done:
		case <-stop:
		}
	}()

	s.log.Info("listening", "addr", ln.Addr().String(), "directory", s.config.Directory)

	defer s.wg.Wait()
	for {
		if s.connSem != nil {
			select {
			case s.connSem <- struct{}{}:
			case <-s.done:
				return ErrServerClosed
			}
		}

		conn, err := ln.Accept()
		if err != nil {
			if s.connSem != nil {
				<-s.connSem
			}
			if s.shutdown.Load() {
				return ErrServerClosed
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				s.stats.ConnectionErrors.Add(1)
				continue
			}
			s.log.Error("accept failed", "error", err)
			return fmt.Errorf("server: accept: %w", err)
		}

		if !s.addConnection() {
			conn.Close()
			if s.connSem != nil {
				<-s.connSem
			}
			return ErrServerClosed
		}

		s.stats.TotalConnections.Add(1)
		s.metrics.connections.Inc()
		go s.handleConnection(conn)
	}
}

// Shutdown stops accepting connections and waits for active ones to finish.
// If ctx ends first the remaining connections are closed and ctx.Err is
// returned.
func (s *Server) Shutdown(ctx context.Context) error {
	if !s.beginShutdown() {
		return nil
	}

	drained := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(drained)
	}()

	select {
	case <-drained:
		return nil
	case <-ctx.Done():
		s.closeAllConnections()
		return ctx.Err()
	}
}

// Close immediately closes the listener and all active connections.
func (s *Server) Close() error {
	if !s.beginShutdown() {
		return nil
	}
	s.closeAllConnections()
	s.wg.Wait()
	return nil
}

func (s *Server) beginShutdown() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.shutdown.CompareAndSwap(false, true) {
		return false
	}
	if s.listener != nil {
		s.listener.Close()
	}
	close(s.done)
	return true
}

// addConnection reserves a WaitGroup slot unless shutdown has begun.
// Holding mu orders every Add before the Wait in Shutdown and Close.
func (s *Server) addConnection() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.shutdown.Load() {
		return false
	}
	s.wg.Add(1)
	return true
}

func (s *Server) trackConnection(conn net.Conn) {
	s.connsMu.Lock()
	s.conns[conn] = struct{}{}
	s.connsMu.Unlock()

	s.stats.ActiveConnections.Add(1)
	s.metrics.activeConnections.Inc()
}

func (s *Server) untrackConnection(conn net.Conn) {
	s.connsMu.Lock()
	delete(s.conns, conn)
	s.connsMu.Unlock()

	s.stats.ActiveConnections.Add(-1)
	s.metrics.activeConnections.Dec()
}

func (s *Server) closeAllConnections() {
	s.connsMu.Lock()
	conns := make([]net.Conn, 0, len(s.conns))
	for conn := range s.conns {
		conns = append(conns, conn)
	}
	s.connsMu.Unlock()

	for _, conn := range conns {
		conn.Close()
	}
}

// handleConnection reads one request, answers it and closes the connection.
func (s *Server) handleConnection(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	if s.connSem != nil {
		defer func() { <-s.connSem }()
	}

	s.trackConnection(conn)
	defer s.untrackConnection(conn)

	log := s.log.With("remote", conn.RemoteAddr().String())

	if err := socket.Apply(conn, s.config.Socket); err != nil {
		s.stats.ConnectionErrors.Add(1)
		log.Debug("socket tuning", "error", err)
	}

	if s.config.ReadTimeout > 0 {
		conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
	}

	req, buf, err := s.readRequest(conn)
	defer s.pool.Put(buf)

	if s.config.WriteTimeout > 0 {
		conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	}

	rw := http11.NewResponseWriter(conn)
	rw.SetHeader(http11.HeaderConnection, "close")

	var route string
	linger := false
	switch {
	case err == nil:
		route = s.serveRequest(rw, req)
		log.Debug("request",
			"method", req.Method.AsText(),
			"path", req.Path.String(),
			"status", rw.Status())

	case errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed):
		// Peer went away before a complete request.
		log.Debug("connection closed before request completed", "buffered", len(buf))
		return

	case isTimeout(err):
		if len(buf) == 0 {
			log.Debug("idle connection timed out")
			return
		}
		route, linger = "error", true
		s.writeError(rw, http11.StatusRequestTimeout)
		log.Debug("request read timed out", "buffered", len(buf))

	case errors.Is(err, errRequestTooLarge) || isDecodeError(err):
		route, linger = "error", true
		s.stats.RequestErrors.Add(1)
		s.metrics.parseErrors.WithLabelValues(errorKind(err)).Inc()
		s.writeError(rw, statusForError(err))
		log.Warn("bad request", "error", err, "buffered", len(buf))

	default:
		s.stats.ConnectionErrors.Add(1)
		log.Debug("read failed", "error", err)
		return
	}

	s.stats.TotalRequests.Add(1)
	s.stats.BytesWritten.Add(uint64(rw.BytesWritten()))
	s.metrics.requests.WithLabelValues(route, statusLabel(rw.Status())).Inc()

	if linger {
		closeWriteAndDrain(conn)
	}
}

// lingerTimeout bounds how long a rejected request's unread bytes are drained.
const lingerTimeout = 500 * time.Millisecond

// closeWriteAndDrain half-closes conn and discards what the peer still
// sends, so closing with unread input does not reset the connection before
// the client reads the error response.
func closeWriteAndDrain(conn net.Conn) {
	cw, ok := conn.(interface{ CloseWrite() error })
	if !ok {
		return
	}
	if err := cw.CloseWrite(); err != nil {
		return
	}
	conn.SetReadDeadline(time.Now().Add(lingerTimeout))
	io.Copy(io.Discard, io.LimitReader(conn, 256<<10))
}

// readRequest accumulates bytes from conn until buf holds a complete
// request, a decode error, or more than MaxRequestSize bytes. The returned
// buffer belongs to the pool and backs every view in the request.
func (s *Server) readRequest(conn net.Conn) (*http11.Request, []byte, error) {
	buf := s.pool.Get(s.config.ReadBufferSize)

	for {
		if len(buf) == cap(buf) {
			buf = s.pool.Grow(buf, s.config.ReadBufferSize)
		}

		n, err := conn.Read(buf[len(buf):cap(buf)])
		buf = buf[:len(buf)+n]
		s.stats.BytesRead.Add(uint64(n))

		if n > 0 {
			req, perr := http11.Parse(buf)
			switch {
			case perr == nil:
				return req, buf, nil
			case !errors.Is(perr, http11.ErrIncomplete):
				return nil, buf, perr
			}
			s.metrics.incompleteReads.Inc()
			if len(buf) >= s.config.MaxRequestSize {
				return nil, buf, errRequestTooLarge
			}
		}

		if err != nil {
			return nil, buf, err
		}
	}
}

func (s *Server) writeError(rw *http11.ResponseWriter, status int) {
	if err := rw.WriteText(status, []byte(http11.StatusText(status))); err != nil {
		s.log.Debug("write error response", "status", status, "error", err)
	}
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func isDecodeError(err error) bool {
	return errors.Is(err, http11.ErrInvalidEncoding) ||
		errors.Is(err, http11.ErrMalformedRequestLine) ||
		errors.Is(err, http11.ErrUnsupportedVersion) ||
		errors.Is(err, http11.ErrInvalidContentLength) ||
		errors.Is(err, http11.ErrInvalidMethod) ||
		errors.Is(err, http11.ErrInvalidHeader)
}
