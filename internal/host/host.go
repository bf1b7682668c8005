// Package host ties project activation to the status channel: one registry
// and at most one transport server per host process.
package host

import (
	"context"
	"log/slog"
	"sync"

	"pulse/internal/checker"
	"pulse/internal/registry"
	"pulse/internal/rpc"
)

// Host owns the process-wide registry and the lazily-started transport
// server. It is constructed once at process start and passed by reference
// into whatever activates projects; its lifetime is exactly the process's.
type Host struct {
	reg    *registry.Registry
	logger *slog.Logger
	socket string

	mu      sync.Mutex
	started bool
	serve   chan error
	cancel  context.CancelFunc
}

// New builds an inactive host serving the given socket path once the first
// project activates.
func New(socket string, logger *slog.Logger) *Host {
	if logger == nil {
		logger = slog.Default()
	}
	return &Host{
		reg:    registry.New(),
		logger: logger,
		socket: socket,
	}
}

// Registry exposes the aggregate query surface, mostly for tests.
func (h *Host) Registry() *registry.Registry {
	return h.reg
}

// Activate registers one project's checker. The first activation also
// binds and starts the transport server; every later activation is a pure
// registry append with no transport side effect. The returned error is
// non-nil only when the first activation fails to bind the channel.
func (h *Host) Activate(c *checker.Checker) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.reg.Register(c)
	h.logger.Info("project activated", "project", c.Name(), "projects", h.reg.Len())

	if h.started {
		return nil
	}
	srv := rpc.NewServer(h.reg, h.logger)
	if err := srv.Listen(h.socket); err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	h.serve = make(chan error, 1)
	go func() {
		h.serve <- srv.Serve(ctx)
	}()
	h.started = true
	h.logger.Info("status channel listening", "socket", h.socket)
	return nil
}

// Run activates every checker and blocks until ctx is done, then shuts the
// server down. It exists for daemon-style hosts; plugin-style hosts call
// Activate directly and never shut down explicitly.
func (h *Host) Run(ctx context.Context, checkers ...*checker.Checker) error {
	for _, c := range checkers {
		if err := h.Activate(c); err != nil {
			return err
		}
	}
	<-ctx.Done()
	return h.Shutdown()
}

// Shutdown stops the transport server if it ever started.
func (h *Host) Shutdown() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.started {
		return nil
	}
	h.cancel()
	err := <-h.serve
	h.started = false
	return err
}
