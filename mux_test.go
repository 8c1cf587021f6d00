package spindle

import (
	"context"
	"testing"
)
import "github.com/stretchr/testify/require"

func TestMux_DispatchesRegisteredPath(t *testing.T) {
	m := NewMux()
	m.Handle("/", HandlerFunc(func(ctx context.Context, req *Request) (*Response, error) {
		return NewResponse(200, []byte("home")), nil
	}))

	resp, err := m.ProcessRequest(context.Background(), &Request{Method: "GET", Path: "/"})
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	require.Equal(t, "home", string(resp.Body))
}

func TestMux_FallsBackToNotFound(t *testing.T) {
	m := NewMux()

	resp, err := m.ProcessRequest(context.Background(), &Request{Method: "GET", Path: "/missing"})
	require.NoError(t, err)
	require.Equal(t, 404, resp.StatusCode)
}

func TestMux_CustomNotFoundHandler(t *testing.T) {
	m := NewMux()
	m.HandleNotFound(HandlerFunc(func(ctx context.Context, req *Request) (*Response, error) {
		return NewResponse(404, []byte("custom")), nil
	}))

	resp, err := m.ProcessRequest(context.Background(), &Request{Method: "GET", Path: "/missing"})
	require.NoError(t, err)
	require.Equal(t, "custom", string(resp.Body))
}

func TestMux_HandlerNeverNil(t *testing.T) {
	m := NewMux()
	require.NotNil(t, m.Handler(&Request{Path: "/nope"}))
}
