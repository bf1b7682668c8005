package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Entry describes one project the host serves: an independently configured
// analysis context rooted at Dir.
type Entry struct {
	Name       string   `toml:"name"`
	Dir        string   `toml:"dir"`
	BuildFlags []string `toml:"build_flags"`
	Env        []string `toml:"env"`
	Tests      bool     `toml:"tests"`
}

// HostConfig holds the daemon-side knobs of a manifest.
type HostConfig struct {
	// Channel names the status socket; both processes must agree on it.
	Channel    string `toml:"channel"`
	DebounceMS int    `toml:"debounce_ms"`
}

// Manifest is a parsed pulse.toml with project dirs resolved to absolute
// paths and names defaulted from directory basenames.
type Manifest struct {
	Root     string
	Host     HostConfig
	Projects []Entry
}

var (
	// ErrNoProjects indicates a manifest with an empty [[projects]] list.
	ErrNoProjects = errors.New("manifest declares no projects")
	// ErrProjectDirMissing indicates a [[projects]] entry without a dir.
	ErrProjectDirMissing = errors.New("missing project dir")
)

type manifestFile struct {
	Host     HostConfig `toml:"host"`
	Projects []Entry    `toml:"projects"`
}

// LoadManifest parses a pulse.toml. Relative project dirs resolve against
// the manifest's own directory, never the process working directory.
func LoadManifest(path string) (*Manifest, error) {
	var file manifestFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if len(file.Projects) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoProjects)
	}

	root, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to resolve manifest dir: %w", path, err)
	}

	m := &Manifest{Root: root, Host: file.Host}
	for i, entry := range file.Projects {
		dir := strings.TrimSpace(entry.Dir)
		if dir == "" {
			return nil, fmt.Errorf("%s: projects[%d]: %w", path, i, ErrProjectDirMissing)
		}
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(root, dir)
		}
		entry.Dir = filepath.Clean(dir)
		if strings.TrimSpace(entry.Name) == "" {
			entry.Name = filepath.Base(entry.Dir)
		}
		m.Projects = append(m.Projects, entry)
	}
	return m, nil
}

// Debounce returns the configured reanalysis debounce, or zero to let the
// engine pick its default.
func (m *Manifest) Debounce() time.Duration {
	if m.Host.DebounceMS <= 0 {
		return 0
	}
	return time.Duration(m.Host.DebounceMS) * time.Millisecond
}
