package rpc

import (
	"bufio"
	"errors"
	"net"
	"sync/atomic"

	"pulse/internal/diag"
)

// ErrCallInFlight reports protocol misuse: a second call was attempted on
// a client whose previous response has not arrived yet. It is raised
// before anything is written; the single pending-response slot is what
// correlates responses to calls.
var ErrCallInFlight = errors.New("rpc: a call is already in flight on this client")

// CallError is a failure the host reported over the wire, as opposed to a
// connection-level failure.
type CallError struct {
	Reason string
}

func (e *CallError) Error() string {
	return "rpc: call failed: " + e.Reason
}

// Client is one connection to the status channel. It supports exactly one
// in-flight call at a time; callers wanting concurrency open more clients.
type Client struct {
	conn     net.Conn
	br       *bufio.Reader
	inFlight atomic.Bool
}

// Dial connects to the socket exactly once. A missing host is a normal,
// immediately-reported condition; there is no retry or backoff here.
func Dial(path string) (*Client, error) {
	conn, err := net.Dial("unix", path)
	if err != nil {
		return nil, err
	}
	return newClient(conn), nil
}

func newClient(conn net.Conn) *Client {
	return &Client{conn: conn, br: bufio.NewReader(conn)}
}

// Close disconnects. The client is unusable afterwards.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Call sends one request and blocks until the correlated response arrives.
// A wire-level Failure is surfaced as *CallError; a successful response is
// returned as a non-nil (possibly empty) slice.
func (c *Client) Call(req Request) ([]diag.Simple, error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		return nil, ErrCallInFlight
	}
	defer c.inFlight.Store(false)

	if err := writeMessage(c.conn, req); err != nil {
		return nil, err
	}
	var resp Response
	if err := readMessage(c.br, &resp); err != nil {
		return nil, err
	}
	if resp.Failure != "" {
		return nil, &CallError{Reason: resp.Failure}
	}
	if resp.Diagnostics == nil {
		return []diag.Simple{}, nil
	}
	return resp.Diagnostics, nil
}

// AllErrors fetches the host's full current error state.
func (c *Client) AllErrors() ([]diag.Simple, error) {
	return c.Call(Request{Method: MethodGetAllErrors})
}

// ErrorsForFiles fetches diagnostics for specific files. Paths are
// absolutized client-side: the host cannot resolve the client's working
// directory, and a relative path would silently match no project.
func (c *Client) ErrorsForFiles(paths []string) ([]diag.Simple, error) {
	abs := make([]string, 0, len(paths))
	for _, p := range paths {
		abs = append(abs, diag.AbsPath(p))
	}
	return c.Call(Request{Method: MethodGetErrorsForFiles, Filenames: abs})
}

// WithClient connects to path, runs fn, and guarantees disconnection after
// fn completes (panics included) before propagating fn's outcome. A
// connection failure is returned without invoking fn.
func WithClient(path string, fn func(*Client) error) error {
	c, err := Dial(path)
	if err != nil {
		return err
	}
	defer c.Close()
	return fn(c)
}
