package engine

import (
	"pulse/internal/diag"
	"pulse/internal/observ"
)

// Snapshot is an immutable Program produced by one analysis run. Queries
// against a snapshot never block and never fail; a stale snapshot simply
// answers with stale data until the watcher swaps in a fresh one.
type Snapshot struct {
	files    map[string]struct{}
	syntax   []diag.Issue
	semantic []diag.Issue
	byFile   map[string][]diag.Issue
	timings  observ.Report
}

// NewSnapshot builds a snapshot from collected issues and member files.
// File keys and per-issue paths are expected to be absolute already.
func NewSnapshot(files []string, syntax, semantic []diag.Issue) *Snapshot {
	s := &Snapshot{
		files:    make(map[string]struct{}, len(files)),
		syntax:   syntax,
		semantic: semantic,
		byFile:   make(map[string][]diag.Issue),
	}
	for _, f := range files {
		s.files[f] = struct{}{}
	}
	// Per-file index preserves the syntax-before-semantic ordering that the
	// aggregate queries use.
	for _, issue := range syntax {
		if issue.File != "" {
			s.byFile[issue.File] = append(s.byFile[issue.File], issue)
		}
	}
	for _, issue := range semantic {
		if issue.File != "" {
			s.byFile[issue.File] = append(s.byFile[issue.File], issue)
		}
	}
	return s
}

func (s *Snapshot) SyntaxIssues() []diag.Issue {
	return s.syntax
}

func (s *Snapshot) SemanticIssues() []diag.Issue {
	return s.semantic
}

func (s *Snapshot) IssuesFor(path string) []diag.Issue {
	return s.byFile[path]
}

func (s *Snapshot) HasFile(path string) bool {
	_, ok := s.files[path]
	return ok
}

// LoadTimings reports how long the analysis pass behind this snapshot took,
// broken down by phase. Empty for snapshots built directly in tests.
func (s *Snapshot) LoadTimings() observ.Report {
	return s.timings
}

var _ Program = (*Snapshot)(nil)
