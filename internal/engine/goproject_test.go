package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"pulse/internal/diag"
)

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	// go list reports symlink-resolved paths; match them.
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		dir = resolved
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func TestLoadCollectsTypeErrors(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"go.mod":  "module example.com/broken\n\ngo 1.21\n",
		"main.go": "package main\n\nfunc main() {\n\tvar x int = \"nope\"\n\t_ = x\n}\n",
	})

	snap, err := Load(context.Background(), LoadOptions{Dir: dir})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(snap.SyntaxIssues()) != 0 {
		t.Fatalf("expected no syntax issues, got %+v", snap.SyntaxIssues())
	}
	sema := snap.SemanticIssues()
	if len(sema) == 0 {
		t.Fatalf("expected a type error")
	}
	issue := sema[0]
	if issue.Code != diag.SemaTypeError {
		t.Fatalf("unexpected code: %v", issue.Code)
	}
	if issue.File == "" || !filepath.IsAbs(issue.File) {
		t.Fatalf("expected absolute file, got %q", issue.File)
	}
	if issue.Start < 0 {
		t.Fatalf("expected a located issue, got start=%d", issue.Start)
	}
	if !snap.HasFile(issue.File) {
		t.Fatalf("issue file %q must be a project member", issue.File)
	}
}

func TestLoadCollectsSyntaxErrorsWithOffsets(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"go.mod":  "module example.com/syn\n\ngo 1.21\n",
		"main.go": "package main\n\nfunc main( {\n}\n",
	})

	snap, err := Load(context.Background(), LoadOptions{Dir: dir})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	syn := snap.SyntaxIssues()
	if len(syn) == 0 {
		t.Fatalf("expected syntax issues")
	}
	if syn[0].Code != diag.SynParseError {
		t.Fatalf("unexpected code: %v", syn[0].Code)
	}
	if syn[0].Start < 0 {
		t.Fatalf("scanner errors carry byte offsets, got start=%d", syn[0].Start)
	}
}

func TestLoadCleanProjectHasMembersAndNoIssues(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"go.mod":  "module example.com/clean\n\ngo 1.21\n",
		"main.go": "package main\n\nfunc main() {}\n",
	})

	snap, err := Load(context.Background(), LoadOptions{Dir: dir})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(snap.SyntaxIssues()) != 0 || len(snap.SemanticIssues()) != 0 {
		t.Fatalf("clean project must have no issues: %+v %+v", snap.SyntaxIssues(), snap.SemanticIssues())
	}
	main := diag.AbsPath(filepath.Join(dir, "main.go"))
	if !snap.HasFile(main) {
		t.Fatalf("expected %q to be a member", main)
	}
	if len(snap.IssuesFor(main)) != 0 {
		t.Fatalf("clean file must have no issues")
	}
}
