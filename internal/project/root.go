package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FindPulseToml walks up from startDir to locate pulse.toml.
func FindPulseToml(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "pulse.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// FindWorkspaceRoot returns the directory containing pulse.toml, if any.
func FindWorkspaceRoot(startDir string) (root string, ok bool, err error) {
	manifestPath, ok, err := FindPulseToml(startDir)
	if err != nil || !ok {
		return "", ok, err
	}
	return filepath.Dir(manifestPath), true, nil
}
