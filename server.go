package spindle

import (
	"bufio"
	"context"
	"errors"
	"log/slog"
	"net"
	"os"
	"time"

	"github.com/osenoh/spindle/pool"
)

type Server struct {
	ctx      context.Context
	addr     string
	mux      *Mux
	store    *Sqlite
	logger   *slog.Logger
	pool     *pool.Pool
	listener net.Listener
}

type Config struct {
	// Addr is the listen address, e.g. "127.0.0.1:7878"
	Addr string

	// Workers is the fixed size of the worker pool
	Workers int

	// DBPath is where the access log lives; ignored when Store is set
	DBPath string

	Mux    *Mux
	Logger *slog.Logger
	Store  *Sqlite
}

func NewServer(cfg *Config) (*Server, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(os.Stdout, nil))
	}

	if cfg.Store == nil && cfg.DBPath != "" {
		st, err := NewSqlite(cfg.DBPath, cfg.Logger)
		if err != nil {
			return nil, err
		}
		cfg.Store = st
	}

	if cfg.Mux == nil {
		cfg.Mux = NewMux()
	}

	workerPool, err := pool.Build(cfg.Workers, cfg.Logger)
	if err != nil {
		return nil, err
	}

	s := &Server{
		ctx:    context.Background(),
		addr:   cfg.Addr,
		pool:   workerPool,
		logger: cfg.Logger,
		store:  cfg.Store,
		mux:    cfg.Mux,
	}

	return s, nil
}

// Handle registers a handler on the server's mux.
func (s *Server) Handle(path string, h Handler) { s.mux.Handle(path, h) }

// HandleNotFound replaces the mux's fallback handler.
func (s *Server) HandleNotFound(h Handler) { s.mux.HandleNotFound(h) }

// Listen binds the configured address without accepting yet.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	s.listener = ln
	s.logger.Info("listening on " + ln.Addr().String())
	return nil
}

// Addr returns the bound address once Listen has run.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.addr
	}
	return s.listener.Addr().String()
}

// Serve accepts connections and hands each one to the worker pool as a
// single job. The accept loop never waits on a connection being served.
func (s *Server) Serve() error {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.logger.Error(err.Error(), "func", "listener.Accept")
			continue
		}

		c := conn
		if err = s.pool.Submit(func() { s.handleConn(c) }); err != nil {
			s.logger.Error(err.Error(), "func", "pool.Submit")
			_ = c.Close()
		}
	}
}

// Start binds and serves; it blocks until the listener is closed.
func (s *Server) Start() error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve()
}

// Stop closes the listener, stops the pool and closes the store. Requests
// already queued on the pool are still served.
func (s *Server) Stop() error {
	if s.listener != nil {
		if err := s.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			s.logger.Error(err.Error(), "func", "listener.Close")
		}
	}

	if err := s.pool.Stop(); err != nil {
		return err
	}

	if s.store != nil {
		return s.store.Close()
	}

	return nil
}

// handleConn runs on a pool worker: read the request line, route it, write
// the response, record the access-log entry.
func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()
	started := time.Now()

	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		s.logger.Error(err.Error(), "func", "conn.Read")
		return
	}

	req, err := ParseRequestLine(line)
	if err != nil {
		s.logger.Error(err.Error())
		_ = NewResponse(400, nil).Write(conn)
		return
	}

	resp, err := s.mux.ProcessRequest(s.ctx, req)
	if err != nil {
		s.logger.Error(err.Error(), "path", req.Path)
		resp = NewResponse(500, nil)
	}

	if err = resp.Write(conn); err != nil {
		s.logger.Error(err.Error(), "func", "resp.Write")
	}

	s.record(req, resp, time.Since(started))
}

// record persists the access-log entry for a served request. Recording is
// best-effort observability; failures are logged and dropped.
func (s *Server) record(req *Request, resp *Response, took time.Duration) {
	if s.store == nil {
		return
	}

	rec := NewRequestRecord(req, resp, took)
	err := NewRetry(3, 100*time.Millisecond, func() error {
		return s.store.Record(s.ctx, rec)
	}).Do()
	if err != nil {
		s.logger.Error(err.Error(), "func", "store.Record")
	}
}
