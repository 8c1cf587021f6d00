package spindle

import (
	"context"
	"sync"
)

type Mux struct {
	entries  map[string]muxEntry
	notFound Handler
	mu       *sync.RWMutex
}

type muxEntry struct {
	h    Handler
	path string
}

func NewMux() *Mux {
	return &Mux{
		entries: make(map[string]muxEntry),
		mu:      &sync.RWMutex{},
	}
}

// Handle is used to register a handler func given a request path
func (m *Mux) Handle(path string, h Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[path] = muxEntry{
		h:    h,
		path: path,
	}
}

// HandleNotFound replaces the fallback handler used when no registered path
// matches the request.
func (m *Mux) HandleNotFound(h Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.notFound = h
}

// match finds a handler in entries given a request path.
func (m *Mux) match(path string) (h Handler) {
	// only check for exact match for now.
	v, ok := m.entries[path]
	if ok {
		return v.h
	}

	return nil
}

// ProcessRequest dispatches the request to the handler whose
// path matches the request path.
func (m *Mux) ProcessRequest(ctx context.Context, req *Request) (*Response, error) {
	h := m.Handler(req)
	return h.ProcessRequest(ctx, req)
}

// Handler returns the handler to use for the given request.
// It always returns a non-nil handler.
//
// If there is no registered handler that applies to the request,
// Handler returns the mux's not-found handler.
func (m *Mux) Handler(req *Request) (h Handler) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	h = m.match(req.Path)
	if h == nil {
		if m.notFound != nil {
			return m.notFound
		}
		h = NotFoundHandler()
	}

	return h
}

// NotFound replies to the request with a plain-text 404 response.
func NotFound(ctx context.Context, req *Request) (*Response, error) {
	return NewResponse(404, []byte("not found")), nil
}

// NotFoundHandler returns a simple handler that replies with a plain 404.
func NotFoundHandler() Handler { return HandlerFunc(NotFound) }
