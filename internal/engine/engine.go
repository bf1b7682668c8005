package engine

import "pulse/internal/diag"

// Program is a point-in-time view of one project's analysis state.
//
// Only the syntactic and semantic issue categories exist at this boundary;
// other categories an engine may support (style hints, suggestions) are
// excluded because they produce noisy, non-actionable results for commit
// gating.
type Program interface {
	// SyntaxIssues returns the currently known parse-level issues.
	SyntaxIssues() []diag.Issue
	// SemanticIssues returns the currently known type-level issues.
	SemanticIssues() []diag.Issue
	// IssuesFor returns both categories scoped to one absolute file path.
	IssuesFor(path string) []diag.Issue
	// HasFile reports whether the program knows path as a member file.
	// Knowing a file syntactically is enough; this is a membership test,
	// not a correctness guarantee.
	HasFile(path string) bool
}
