// Package registry aggregates diagnostic queries across every project the
// host has activated.
package registry

import (
	"fmt"
	"sync"

	"pulse/internal/checker"
	"pulse/internal/diag"
)

// Registry holds the live, append-only set of project checkers in
// registration order. Membership only grows; a torn-down project's checker
// stays registered and degrades to claiming nothing.
//
// Reads are guarded because transport connections are served concurrently.
type Registry struct {
	mu       sync.RWMutex
	checkers []*checker.Checker
}

func New() *Registry {
	return &Registry{}
}

// Register appends a checker. There is no duplicate detection: registering
// the same project twice doubles its issues in aggregate queries, which is
// acceptable for a convenience view.
func (r *Registry) Register(c *checker.Checker) {
	if c == nil {
		return
	}
	r.mu.Lock()
	r.checkers = append(r.checkers, c)
	r.mu.Unlock()
}

// Len returns the number of registered checkers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.checkers)
}

// AllErrors concatenates every checker's current errors in registration
// order, without dedup or sorting across projects.
func (r *Registry) AllErrors() []diag.Simple {
	out := []diag.Simple{}
	for _, c := range r.snapshot() {
		out = append(out, c.AllErrors()...)
	}
	return out
}

// ErrorsForFiles resolves each requested path independently: every checker
// that claims the path contributes its view, in registration order. The
// same file may legitimately belong to several projects with disagreeing
// views, and a commit gate needs all of them. A path no checker claims
// yields exactly one synthesized code-20000 entry so that results for the
// other requested files are not discarded.
func (r *Registry) ErrorsForFiles(paths []string) []diag.Simple {
	checkers := r.snapshot()
	out := []diag.Simple{}
	for _, path := range paths {
		claimed := false
		for _, c := range checkers {
			if !c.FileInProject(path) {
				continue
			}
			claimed = true
			out = append(out, c.ErrorsForFile(path)...)
		}
		if !claimed {
			out = append(out, notInProject(path))
		}
	}
	return out
}

func (r *Registry) snapshot() []*checker.Checker {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.checkers
}

func notInProject(path string) diag.Simple {
	return diag.Simple{
		FilePath: path,
		Severity: diag.SevError,
		Code:     diag.FileNotInProject,
		Message:  fmt.Sprintf("%s is not part of any served project; make sure the right project is being served", path),
	}
}
