// Package checker binds one project's analysis state to the normalized
// diagnostic queries the registry fans out to.
package checker

import (
	"pulse/internal/diag"
	"pulse/internal/engine"
)

// ProgramProvider yields the project's current program, or nil while the
// project is mid-initialization or after it has been torn down.
type ProgramProvider func() engine.Program

// Checker answers diagnostic queries for exactly one project. It is created
// once when the host activates a project and retained for the host's
// lifetime; if the underlying project goes away its queries degrade to
// "no issues" instead of failing.
type Checker struct {
	name    string
	program ProgramProvider
}

// New builds a checker over a program provider. name identifies the project
// in logs only; it never crosses the wire.
func New(name string, provider ProgramProvider) *Checker {
	return &Checker{name: name, program: provider}
}

// Name returns the project label the checker was registered under.
func (c *Checker) Name() string {
	return c.name
}

// AllErrors returns the union of the project's current syntactic and
// semantic issues, syntactic first. A not-ready project yields nil.
func (c *Checker) AllErrors() []diag.Simple {
	prog := c.prog()
	if prog == nil {
		return nil
	}
	syntax := prog.SyntaxIssues()
	semantic := prog.SemanticIssues()
	issues := make([]diag.Issue, 0, len(syntax)+len(semantic))
	issues = append(issues, syntax...)
	issues = append(issues, semantic...)
	return diag.NormalizeAll(issues)
}

// ErrorsForFile returns the same two categories scoped to one absolute
// path. A not-ready project yields nil.
func (c *Checker) ErrorsForFile(path string) []diag.Simple {
	prog := c.prog()
	if prog == nil {
		return nil
	}
	return diag.NormalizeAll(prog.IssuesFor(path))
}

// FileInProject reports whether the project's current program knows path.
// A not-ready project claims nothing.
func (c *Checker) FileInProject(path string) bool {
	prog := c.prog()
	if prog == nil {
		return false
	}
	return prog.HasFile(path)
}

func (c *Checker) prog() engine.Program {
	if c.program == nil {
		return nil
	}
	return c.program()
}
