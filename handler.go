package spindle

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// A Handler builds the response for a routed request.
//
// ProcessRequest should return the response to write back to the client.
// If it returns a non-nil error the client gets an empty 500 and the error
// is logged by the serving worker.
type Handler interface {
	ProcessRequest(context.Context, *Request) (*Response, error)
}

// The HandlerFunc type is an adapter to allow the use of
// ordinary functions as a Handler. If f is a function
// with the appropriate signature, HandlerFunc(f) is a
// Handler that calls f.
type HandlerFunc func(context.Context, *Request) (*Response, error)

// ProcessRequest calls fn(ctx, req)
func (fn HandlerFunc) ProcessRequest(ctx context.Context, req *Request) (*Response, error) {
	return fn(ctx, req)
}

// StaticFileHandler serves a single file from dir with the given status on
// every request. The file is read per request, so edits show up without a
// restart.
func StaticFileHandler(dir, name string, status int) Handler {
	return HandlerFunc(func(ctx context.Context, req *Request) (*Response, error) {
		body, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}

		return NewResponse(status, body), nil
	})
}

// SleepHandler waits for d before delegating to next. It simulates a slow
// request: the sleep happens on the worker that picked the request up,
// occupying that one worker and nothing else.
func SleepHandler(d time.Duration, next Handler) Handler {
	return HandlerFunc(func(ctx context.Context, req *Request) (*Response, error) {
		time.Sleep(d)
		return next.ProcessRequest(ctx, req)
	})
}
