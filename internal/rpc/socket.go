package rpc

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultChannel is the channel name both processes agree on when no
// manifest overrides it.
const DefaultChannel = "pulse-status"

// SocketPath resolves a channel name to its well-known socket path.
// One deployment owns one path; a second host process binding it fails
// at listen time.
func SocketPath(name string) string {
	if name == "" {
		name = DefaultChannel
	}
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, name+".sock")
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("%s-%d.sock", name, os.Getuid()))
}
