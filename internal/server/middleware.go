package server

import (
	"time"

	"github.com/Brownie44l1/hanode/internal/logger"
	"github.com/Brownie44l1/hanode/internal/request"
	"github.com/Brownie44l1/hanode/internal/response"
	"github.com/Brownie44l1/hanode/internal/router"
)

// Middleware wraps a handler
type Middleware func(next router.Handler) router.Handler

// LoggingMiddleware logs every dispatched request, including 404s
func LoggingMiddleware(log logger.Logger) Middleware {
	return func(next router.Handler) router.Handler {
		return func(req *request.Request) response.Response {
			start := time.Now()

			resp := next(req)

			log.Info("request handled",
				logger.Field{Key: "method", Value: string(req.Method)},
				logger.Field{Key: "path", Value: req.URI},
				logger.Field{Key: "version", Value: req.Version},
				logger.Field{Key: "status", Value: int(resp.Status)},
				logger.Field{Key: "duration_ms", Value: time.Since(start).Milliseconds()},
			)
			return resp
		}
	}
}

// MethodsMiddleware answers 405 for methods outside allowed,
// for handlers that only make sense for e.g. POST.
func MethodsMiddleware(allowed ...request.Method) Middleware {
	return func(next router.Handler) router.Handler {
		return func(req *request.Request) response.Response {
			for _, m := range allowed {
				if req.Method == m {
					return next(req)
				}
			}
			return response.New(response.StatusMethodNotAllowed, "Method Not Allowed")
		}
	}
}
