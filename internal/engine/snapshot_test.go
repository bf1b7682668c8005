package engine

import (
	"testing"

	"pulse/internal/diag"
)

func TestSnapshotMembership(t *testing.T) {
	snap := NewSnapshot([]string{"/p/a.go", "/p/b.go"}, nil, nil)
	if !snap.HasFile("/p/a.go") {
		t.Fatalf("expected /p/a.go to be a member")
	}
	if snap.HasFile("/p/c.go") {
		t.Fatalf("/p/c.go must not be a member")
	}
}

func TestSnapshotPerFileIndexOrdering(t *testing.T) {
	syntax := []diag.Issue{
		{File: "/p/a.go", Start: 5, Code: diag.SynParseError, Message: diag.MessageChain{Text: "syn"}},
	}
	semantic := []diag.Issue{
		{File: "/p/a.go", Start: 1, Code: diag.SemaTypeError, Message: diag.MessageChain{Text: "sema"}},
		{File: "/p/b.go", Start: 0, Code: diag.SemaTypeError, Message: diag.MessageChain{Text: "other"}},
	}
	snap := NewSnapshot([]string{"/p/a.go", "/p/b.go"}, syntax, semantic)

	got := snap.IssuesFor("/p/a.go")
	if len(got) != 2 {
		t.Fatalf("expected 2 issues for /p/a.go, got %d", len(got))
	}
	// Syntactic issues come before semantic ones regardless of offsets.
	if got[0].Message.Text != "syn" || got[1].Message.Text != "sema" {
		t.Fatalf("unexpected per-file ordering: %+v", got)
	}
	if len(snap.IssuesFor("/p/c.go")) != 0 {
		t.Fatalf("unknown file must have no issues")
	}
}

func TestSnapshotFileLessIssuesNotIndexed(t *testing.T) {
	semantic := []diag.Issue{
		{Start: -1, Code: diag.LoadError, Message: diag.MessageChain{Text: "broken go.mod"}},
	}
	snap := NewSnapshot(nil, nil, semantic)
	if len(snap.SemanticIssues()) != 1 {
		t.Fatalf("file-less issue must survive in the aggregate view")
	}
	if len(snap.IssuesFor("")) != 0 {
		t.Fatalf("file-less issues must not be reachable by path")
	}
}
