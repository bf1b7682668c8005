package diagfmt

import "path/filepath"

func displayPath(path string, mode PathMode, base string) string {
	if path == "" {
		return "<no file>"
	}
	switch mode {
	case PathModeRelative:
		if base != "" {
			if rel, err := filepath.Rel(base, path); err == nil && !filepath.IsAbs(rel) {
				return rel
			}
		}
		return path
	case PathModeBasename:
		return filepath.Base(path)
	default:
		return path
	}
}
