package server

import (
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Brownie44l1/hanode/internal/logger"
	"github.com/Brownie44l1/hanode/internal/router"
)

// BindError means the listening socket could not be created
type BindError struct {
	Addr string
	Err  error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("bind %s: %v", e.Addr, e.Err)
}

func (e *BindError) Unwrap() error {
	return e.Err
}

// Server serves one request per connection, one connection at a time.
// Routes and the bind address are set up front; Serve freezes the route
// table before accepting.
type Server struct {
	Logger logger.Logger

	config      Config
	router      *router.Router
	middlewares []Middleware
	metrics     *Metrics

	mu       sync.Mutex
	listener net.Listener
	closed   atomic.Bool
}

// New creates a server. A nil logger discards everything.
func New(config Config, log logger.Logger) *Server {
	if log == nil {
		log = logger.NullLogger{}
	}
	return &Server{
		Logger:  log,
		config:  config,
		router:  router.New(log),
		metrics: NewMetrics(),
	}
}

// Route registers handler for the exact path
func (s *Server) Route(path string, handler router.Handler) *Server {
	s.router.Handle(path, handler)
	return s
}

// Bind sets the listen address used by Run
func (s *Server) Bind(host string, port uint16) *Server {
	s.config.Host = host
	s.config.Port = port
	return s
}

// Use appends middleware; the first added runs outermost
func (s *Server) Use(mw ...Middleware) *Server {
	s.middlewares = append(s.middlewares, mw...)
	return s
}

func (s *Server) Config() Config {
	return s.config
}

// Run binds the configured address and serves until Close.
// A *BindError means nothing was served.
func (s *Server) Run() error {
	if err := s.config.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	addr := s.config.Addr()
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return &BindError{Addr: addr, Err: err}
	}
	return s.Serve(ln)
}

// Serve accepts connections from ln and handles each to completion before
// accepting the next. Per-connection errors are logged, not returned.
func (s *Server) Serve(ln net.Listener) error {
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	if s.closed.Load() {
		ln.Close()
		return nil
	}

	table := s.router.Freeze()
	handler := s.buildHandler(table)

	s.Logger.Info("server started",
		logger.Field{Key: "addr", Value: "http://" + ln.Addr().String()},
		logger.Field{Key: "routes", Value: table.Len()},
		logger.Field{Key: "wire", Value: s.config.WireFormat.String()},
	)

	var retryDelay time.Duration
	for {
		conn, err := ln.Accept()
		if err != nil {
			if s.closed.Load() {
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return err
			}
			retryDelay = nextRetryDelay(retryDelay)
			s.Logger.Error("connection failed",
				logger.Field{Key: "error", Value: err},
				logger.Field{Key: "retry_in", Value: retryDelay.String()},
			)
			time.Sleep(retryDelay)
			continue
		}
		retryDelay = 0

		if err := s.serveConn(conn, handler); err != nil {
			s.Logger.Error("error handling connection",
				logger.Field{Key: "remote", Value: conn.RemoteAddr().String()},
				logger.Field{Key: "error", Value: err},
			)
		}
	}
}

const (
	minAcceptDelay = 5 * time.Millisecond
	maxAcceptDelay = time.Second
)

// nextRetryDelay doubles the wait after each failed Accept, up to maxAcceptDelay.
func nextRetryDelay(prev time.Duration) time.Duration {
	if prev == 0 {
		return minAcceptDelay
	}
	if next := prev * 2; next < maxAcceptDelay {
		return next
	}
	return maxAcceptDelay
}

// Close stops the accept loop. The connection being served, if any, is
// finished first.
func (s *Server) Close() error {
	s.closed.Store(true)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Close()
}

// Stats returns a snapshot of the request metrics
func (s *Server) Stats() MetricsSnapshot {
	return s.metrics.Snapshot()
}
