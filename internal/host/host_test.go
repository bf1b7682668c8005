package host

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"pulse/internal/checker"
	"pulse/internal/diag"
	"pulse/internal/engine"
	"pulse/internal/rpc"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func snapChecker(name, file, msg string) *checker.Checker {
	snap := engine.NewSnapshot(
		[]string{file},
		nil,
		[]diag.Issue{{
			File:     file,
			Start:    0,
			Length:   1,
			Severity: diag.SevError,
			Code:     diag.SemaTypeError,
			Message:  diag.MessageChain{Text: msg},
		}},
	)
	return checker.New(name, func() engine.Program { return snap })
}

func TestFirstActivationStartsServer(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "host.sock")
	h := New(socket, quietLogger())
	t.Cleanup(func() { _ = h.Shutdown() })

	if _, err := os.Stat(socket); err == nil {
		t.Fatalf("socket must not exist before first activation")
	}
	if err := h.Activate(snapChecker("one", "/p/a.go", "a1")); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if _, err := os.Stat(socket); err != nil {
		t.Fatalf("first activation must bind the socket: %v", err)
	}

	got, err := queryAll(socket)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 1 || got[0].Message != "a1" {
		t.Fatalf("unexpected diagnostics: %+v", got)
	}
}

func TestLaterActivationsAppendOnly(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "host.sock")
	h := New(socket, quietLogger())
	t.Cleanup(func() { _ = h.Shutdown() })

	if err := h.Activate(snapChecker("one", "/p/a.go", "a1")); err != nil {
		t.Fatalf("activate one: %v", err)
	}
	if err := h.Activate(snapChecker("two", "/q/b.go", "b1")); err != nil {
		t.Fatalf("activate two: %v", err)
	}
	if h.Registry().Len() != 2 {
		t.Fatalf("expected 2 registered projects, got %d", h.Registry().Len())
	}

	got, err := queryAll(socket)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 || got[0].Message != "a1" || got[1].Message != "b1" {
		t.Fatalf("expected both projects in registration order: %+v", got)
	}
}

func TestShutdownRemovesSocket(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "host.sock")
	h := New(socket, quietLogger())
	if err := h.Activate(snapChecker("one", "/p/a.go", "a1")); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if err := h.Shutdown(); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if _, err := os.Stat(socket); err == nil {
		t.Fatalf("shutdown must remove the socket file")
	}
	// Shutdown without a started server is a no-op.
	if err := h.Shutdown(); err != nil {
		t.Fatalf("second shutdown: %v", err)
	}
}

func queryAll(socket string) ([]diag.Simple, error) {
	var out []diag.Simple
	err := rpc.WithClient(socket, func(c *rpc.Client) error {
		got, err := c.AllErrors()
		out = got
		return err
	})
	return out, err
}
