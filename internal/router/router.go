package router

import (
	"sync"

	"github.com/Brownie44l1/hanode/internal/logger"
	"github.com/Brownie44l1/hanode/internal/request"
	"github.com/Brownie44l1/hanode/internal/response"
)

// Handler maps a parsed request to a response. Any state it needs is
// captured by the caller, e.g. in a closure.
type Handler func(req *request.Request) response.Response

// Router collects routes during setup. Paths are matched exactly: no
// wildcards, no prefixes, the query string is part of the path.
type Router struct {
	mu     sync.Mutex
	routes map[string]Handler
	logger logger.Logger
}

// New creates a new router. A nil logger discards warnings.
func New(log logger.Logger) *Router {
	if log == nil {
		log = logger.NullLogger{}
	}
	return &Router{
		routes: make(map[string]Handler),
		logger: log,
	}
}

// Handle registers handler for path. Registering a path twice logs a
// warning and the last registration wins.
func (r *Router) Handle(path string, handler Handler) *Router {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.routes[path]; exists {
		r.logger.Warn("route already registered, overwriting", logger.Field{Key: "path", Value: path})
	}
	r.routes[path] = handler
	return r
}

// Resolve looks up path during setup; serving code should use a Table.
func (r *Router) Resolve(path string) (Handler, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.routes[path]
	return h, ok
}

// Freeze snapshots the current routes into an immutable Table.
// Later calls to Handle do not change the returned Table.
func (r *Router) Freeze() *Table {
	r.mu.Lock()
	defer r.mu.Unlock()

	routes := make(map[string]Handler, len(r.routes))
	for path, h := range r.routes {
		routes[path] = h
	}
	return &Table{routes: routes}
}

// Table is a read-only route table, safe to share between goroutines
// without locking.
type Table struct {
	routes map[string]Handler
}

// Resolve finds the handler registered for exactly path
func (t *Table) Resolve(path string) (Handler, bool) {
	h, ok := t.routes[path]
	return h, ok
}

func (t *Table) Len() int {
	return len(t.routes)
}
