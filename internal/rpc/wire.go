package rpc

import (
	"fmt"

	"pulse/internal/diag"
)

// Method is the closed set of operations the status channel supports.
type Method uint8

const (
	MethodUnknown Method = iota
	MethodGetAllErrors
	MethodGetErrorsForFiles
)

func (m Method) String() string {
	switch m {
	case MethodGetAllErrors:
		return "getAllErrors"
	case MethodGetErrorsForFiles:
		return "getErrorsForFiles"
	}
	return fmt.Sprintf("method(%d)", uint8(m))
}

// Request is the client-to-host frame. Filenames is only meaningful for
// MethodGetErrorsForFiles and must contain absolute paths: the host's
// working directory is not the client's, so relative paths would silently
// match nothing.
type Request struct {
	Method    Method   `msgpack:"method"`
	Filenames []string `msgpack:"filenames,omitempty"`
}

// Response is the host-to-client frame. A non-empty Failure is the sole
// error signal on the channel; Diagnostics is only meaningful when Failure
// is empty.
type Response struct {
	Failure     string        `msgpack:"failure,omitempty"`
	Diagnostics []diag.Simple `msgpack:"diagnostics"`
}
