package rpc

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"

	"golang.org/x/sync/errgroup"

	"pulse/internal/registry"
)

// Server answers status queries over one Unix socket. One server exists per
// host process; it dispatches every request to the registry and writes the
// result back on the connection the request arrived on. Connections are
// served independently; correlation is per-connection ordering, never a
// request id.
type Server struct {
	reg    *registry.Registry
	logger *slog.Logger
	ln     net.Listener
	path   string
}

// NewServer builds a server over the host's registry.
func NewServer(reg *registry.Registry, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{reg: reg, logger: logger}
}

// Listen binds the well-known socket. A stale or contested path fails here:
// only one host process may serve a channel at a time.
func (s *Server) Listen(path string) error {
	ln, err := net.Listen("unix", path)
	if err != nil {
		return fmt.Errorf("bind status channel: %w", err)
	}
	s.ln = ln
	s.path = path
	return nil
}

// Addr returns the bound socket path, empty before Listen.
func (s *Server) Addr() string {
	return s.path
}

// Serve accepts connections until ctx is done, then closes the listener and
// removes the socket file. Dispatch failures never terminate the server.
func (s *Server) Serve(ctx context.Context) error {
	if s.ln == nil {
		return errors.New("serve before listen")
	}
	defer os.Remove(s.path)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-ctx.Done()
		s.ln.Close()
		return nil
	})
	g.Go(func() error {
		for {
			conn, err := s.ln.Accept()
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return err
			}
			g.Go(func() error {
				stop := context.AfterFunc(ctx, func() { conn.Close() })
				defer stop()
				s.serveConn(conn)
				return nil
			})
		}
	})
	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (s *Server) serveConn(conn net.Conn) {
	defer conn.Close()
	br := bufio.NewReader(conn)
	for {
		var req Request
		if err := readMessage(br, &req); err != nil {
			if !errors.Is(err, io.EOF) {
				s.logger.Debug("connection dropped", "error", err)
			}
			return
		}
		resp := s.handle(req)
		if resp.Failure != "" {
			s.logger.Warn("request failed", "method", req.Method.String(), "reason", resp.Failure)
		} else {
			s.logger.Debug("request served", "method", req.Method.String(), "diagnostics", len(resp.Diagnostics))
		}
		if err := writeMessage(conn, resp); err != nil {
			s.logger.Debug("response write failed", "error", err)
			return
		}
	}
}

// handle dispatches on the method tag. Anything unexpected (an unknown
// tag, a panicking registry query) becomes a failure string on the same
// channel; the host process never crashes from a bad request.
func (s *Server) handle(req Request) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			resp = Response{Failure: fmt.Sprintf("internal failure handling %s: %v", req.Method, r)}
		}
	}()
	switch req.Method {
	case MethodGetAllErrors:
		return Response{Diagnostics: s.reg.AllErrors()}
	case MethodGetErrorsForFiles:
		return Response{Diagnostics: s.reg.ErrorsForFiles(req.Filenames)}
	default:
		return Response{Failure: fmt.Sprintf("unknown method %s", req.Method)}
	}
}
