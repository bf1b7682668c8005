package checker

import (
	"testing"

	"pulse/internal/diag"
	"pulse/internal/engine"
)

func issue(file, msg string, code diag.Code) diag.Issue {
	return diag.Issue{
		File:     file,
		Start:    0,
		Length:   1,
		Severity: diag.SevError,
		Code:     code,
		Message:  diag.MessageChain{Text: msg},
	}
}

func TestCheckerNotReadyDegrades(t *testing.T) {
	c := New("down", func() engine.Program { return nil })
	if got := c.AllErrors(); got != nil {
		t.Fatalf("expected nil from a not-ready project, got %+v", got)
	}
	if got := c.ErrorsForFile("/p/a.go"); got != nil {
		t.Fatalf("expected nil per-file result, got %+v", got)
	}
	if c.FileInProject("/p/a.go") {
		t.Fatalf("a not-ready project must claim no files")
	}
}

func TestCheckerNilProvider(t *testing.T) {
	c := New("unbound", nil)
	if c.AllErrors() != nil || c.FileInProject("/x") {
		t.Fatalf("nil provider must behave like a not-ready project")
	}
}

func TestCheckerAllErrorsSyntaxFirst(t *testing.T) {
	snap := engine.NewSnapshot(
		[]string{"/p/a.go"},
		[]diag.Issue{issue("/p/a.go", "unexpected {", diag.SynParseError)},
		[]diag.Issue{issue("/p/a.go", "undefined: x", diag.SemaTypeError)},
	)
	c := New("p", func() engine.Program { return snap })

	got := c.AllErrors()
	if len(got) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(got))
	}
	if got[0].Code != diag.SynParseError || got[1].Code != diag.SemaTypeError {
		t.Fatalf("expected syntactic before semantic: %+v", got)
	}
	if got[0].Message != "unexpected {" {
		t.Fatalf("message must be flattened text: %q", got[0].Message)
	}
}

func TestCheckerErrorsForFileScopes(t *testing.T) {
	snap := engine.NewSnapshot(
		[]string{"/p/a.go", "/p/b.go"},
		nil,
		[]diag.Issue{
			issue("/p/a.go", "bad a", diag.SemaTypeError),
			issue("/p/b.go", "bad b", diag.SemaTypeError),
		},
	)
	c := New("p", func() engine.Program { return snap })

	got := c.ErrorsForFile("/p/b.go")
	if len(got) != 1 || got[0].Message != "bad b" {
		t.Fatalf("unexpected scoped result: %+v", got)
	}
	if !c.FileInProject("/p/a.go") || c.FileInProject("/p/zzz.go") {
		t.Fatalf("membership must follow the program's file set")
	}
}
