package server

import (
	"errors"
	"fmt"
	"io"
	"net"
	"runtime/debug"
	"time"

	"github.com/Brownie44l1/hanode/internal/logger"
	"github.com/Brownie44l1/hanode/internal/request"
	"github.com/Brownie44l1/hanode/internal/response"
	"github.com/Brownie44l1/hanode/internal/router"
)

// maxEchoedBytes limits how much of a bad request is echoed back in the 400 body
const maxEchoedBytes = 256

const (
	// lingerTimeout bounds how long unread input is drained after an
	// oversized request, so the client can read the 400 before the close.
	lingerTimeout = 500 * time.Millisecond
	maxDrainBytes = 256 << 10
)

// serveConn handles exactly one request on conn, then closes it.
// Only I/O failures are returned; bad requests get a 400.
func (s *Server) serveConn(conn net.Conn, handler router.Handler) error {
	defer conn.Close()

	start := time.Now()
	s.metrics.connOpened()
	defer s.metrics.connClosed()

	if s.config.ReadTimeout > 0 {
		if err := conn.SetReadDeadline(start.Add(s.config.ReadTimeout)); err != nil {
			return fmt.Errorf("set read deadline: %w", err)
		}
	}

	chunk := GetBuffer(s.config.ChunkSize)
	raw, err := request.ReadRaw(conn, chunk, s.config.MaxRequestBytes)
	PutBuffer(chunk)

	var (
		resp    response.Response
		version string
		unread  bool
	)

	switch {
	case errors.Is(err, request.ErrEmptyRequest):
		s.Logger.Debug("connection closed without a request",
			logger.Field{Key: "remote", Value: conn.RemoteAddr().String()})
		return nil

	case errors.Is(err, request.ErrRequestTooLarge):
		resp = s.handleBadRequest(raw, err)
		unread = true

	case err != nil:
		return err

	default:
		req, perr := request.Parse(raw)
		if perr != nil {
			resp = s.handleBadRequest(raw, perr)
			break
		}
		s.Logger.Debug("request", logger.Field{Key: "request", Value: req.String()})
		version = req.Version
		resp = s.handleRequest(handler, req)
	}

	if s.config.WriteTimeout > 0 {
		if err := conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout)); err != nil {
			return fmt.Errorf("set write deadline: %w", err)
		}
	}

	err = response.Encode(conn, resp, version, s.config.WireFormat)
	s.metrics.RecordRequest(resp.Status, time.Since(start))
	if err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	if unread {
		linger(conn)
	}
	return nil
}

// linger half-closes conn and discards what the client is still sending.
// Closing with unread input makes the kernel reset the connection, which
// can destroy the response before the client reads it.
func linger(conn net.Conn) {
	if tc, ok := conn.(*net.TCPConn); ok {
		_ = tc.CloseWrite()
	}
	if err := conn.SetReadDeadline(time.Now().Add(lingerTimeout)); err != nil {
		return
	}
	_, _ = io.CopyN(io.Discard, conn, maxDrainBytes)
}

// handleRequest wraps handler call with panic recovery
func (s *Server) handleRequest(handler router.Handler, req *request.Request) (resp response.Response) {
	defer func() {
		if r := recover(); r != nil {
			s.Logger.Error("handler panic",
				logger.Field{Key: "error", Value: fmt.Sprint(r)},
				logger.Field{Key: "path", Value: req.URI},
				logger.Field{Key: "stack", Value: string(debug.Stack())},
			)
			resp = response.InternalServerError()
		}
	}()

	return handler(req)
}

// handleBadRequest builds the 400 for a request that could not be read or parsed
func (s *Server) handleBadRequest(raw []byte, err error) response.Response {
	if len(raw) > maxEchoedBytes {
		raw = raw[:maxEchoedBytes]
	}
	s.Logger.Warn("badly formatted request",
		logger.Field{Key: "request", Value: string(raw)},
		logger.Field{Key: "error", Value: err},
	)
	return response.BadRequest(string(raw), err)
}

// buildHandler resolves the route and wraps the result in the middleware chain.
// Unknown paths become an empty 404 inside the chain, so middleware sees them too.
func (s *Server) buildHandler(table *router.Table) router.Handler {
	var h router.Handler = func(req *request.Request) response.Response {
		route, ok := table.Resolve(req.URI)
		if !ok {
			return response.NotFound()
		}
		return route(req)
	}

	for i := len(s.middlewares) - 1; i >= 0; i-- {
		h = s.middlewares[i](h)
	}
	return h
}
