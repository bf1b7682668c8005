// Package diagfmt renders normalized diagnostics for human and machine
// consumers of the CLI.
package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAbsolute prints paths exactly as carried on the wire.
	PathModeAbsolute PathMode = iota
	// PathModeRelative prints paths relative to a base directory when possible.
	PathModeRelative
	PathModeBasename
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color    bool
	PathMode PathMode
	// BaseDir anchors PathModeRelative; ignored for other modes.
	BaseDir string
	// Max truncates output after this many diagnostics, 0 - unlimited.
	Max int
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	PathMode PathMode
	BaseDir  string
	Max      int
}
