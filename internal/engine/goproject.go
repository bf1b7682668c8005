package engine

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"
	"go/types"
	"os"
	"sort"
	"strings"
	"sync"

	"golang.org/x/tools/go/packages"

	"pulse/internal/diag"
	"pulse/internal/observ"
)

const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedImports |
	packages.NeedDeps

// LoadOptions configures one analysis run over a Go project.
type LoadOptions struct {
	// Dir is the project root; patterns resolve relative to it.
	Dir string
	// Patterns defaults to "./...".
	Patterns []string
	// BuildFlags are passed through to the loader (e.g. -tags).
	BuildFlags []string
	// Env entries are appended to the inherited environment.
	Env []string
	// Tests includes test packages in the load.
	Tests bool
}

// issueCollector accumulates parse issues from the loader's concurrent
// ParseFile calls.
type issueCollector struct {
	mu     sync.Mutex
	issues []diag.Issue
}

func (c *issueCollector) add(issue diag.Issue) {
	c.mu.Lock()
	c.issues = append(c.issues, issue)
	c.mu.Unlock()
}

// Load runs a full analysis pass over the project and returns its snapshot.
// Parse errors become syntactic issues with byte-accurate offsets; type
// errors become semantic issues; loader-level failures (broken go.mod,
// unresolvable imports) become file-less load issues. A non-nil error is
// returned only when the loader itself could not run at all.
func Load(ctx context.Context, opts LoadOptions) (*Snapshot, error) {
	if strings.TrimSpace(opts.Dir) == "" {
		return nil, fmt.Errorf("project dir is required")
	}
	patterns := opts.Patterns
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	syntax := &issueCollector{}
	cfg := &packages.Config{
		Context:    ctx,
		Dir:        opts.Dir,
		Mode:       loadMode,
		BuildFlags: opts.BuildFlags,
		Tests:      opts.Tests,
		ParseFile: func(fset *token.FileSet, filename string, src []byte) (*ast.File, error) {
			file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
			if err != nil {
				collectParseIssues(syntax, err)
			}
			if file == nil {
				return nil, err
			}
			// Keep the partial AST so type checking can proceed; the parse
			// issues are already recorded.
			return file, nil
		},
	}
	if len(opts.Env) > 0 {
		cfg.Env = append(os.Environ(), opts.Env...)
	}

	tm := observ.NewTimer()
	loadPhase := tm.Begin("go/packages load")
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", opts.Dir, err)
	}
	tm.End(loadPhase, fmt.Sprintf("%d packages", len(pkgs)))

	collectPhase := tm.Begin("issue collection")
	var (
		files    []string
		semantic []diag.Issue
		seenFile = make(map[string]struct{})
		seenErr  = make(map[string]struct{})
	)
	for _, pkg := range pkgs {
		for _, f := range pkg.GoFiles {
			abs := diag.AbsPath(f)
			if _, ok := seenFile[abs]; ok {
				continue
			}
			seenFile[abs] = struct{}{}
			files = append(files, abs)
		}
		for _, te := range pkg.TypeErrors {
			issue := typeErrorIssue(te)
			key := fmt.Sprintf("%s:%d:%s", issue.File, issue.Start, issue.Message.Text)
			if _, ok := seenErr[key]; ok {
				continue
			}
			seenErr[key] = struct{}{}
			semantic = append(semantic, issue)
		}
		for _, pe := range pkg.Errors {
			if pe.Kind != packages.ListError {
				continue
			}
			key := "list:" + pe.Pos + ":" + pe.Msg
			if _, ok := seenErr[key]; ok {
				continue
			}
			seenErr[key] = struct{}{}
			semantic = append(semantic, diag.Issue{
				File:     posFile(pe.Pos),
				Start:    -1,
				Severity: diag.SevError,
				Code:     diag.LoadError,
				Message:  diag.MessageChain{Text: pe.Msg},
			})
		}
	}

	sortIssues(syntax.issues)
	sortIssues(semantic)
	tm.End(collectPhase, fmt.Sprintf("%d issues", len(syntax.issues)+len(semantic)))

	snap := NewSnapshot(files, syntax.issues, semantic)
	snap.timings = tm.Report()
	return snap, nil
}

func collectParseIssues(c *issueCollector, err error) {
	var list scanner.ErrorList
	if !errors.As(err, &list) {
		c.add(diag.Issue{
			Start:    -1,
			Severity: diag.SevError,
			Code:     diag.SynParseError,
			Message:  diag.MessageChain{Text: err.Error()},
		})
		return
	}
	for _, e := range list {
		c.add(diag.Issue{
			File:     diag.AbsPath(e.Pos.Filename),
			Start:    e.Pos.Offset,
			Length:   0,
			Severity: diag.SevError,
			Code:     diag.SynParseError,
			Message:  diag.MessageChain{Text: e.Msg},
		})
	}
}

func typeErrorIssue(te types.Error) diag.Issue {
	pos := te.Fset.Position(te.Pos)
	issue := diag.Issue{
		Start:    -1,
		Severity: diag.SevError,
		Code:     diag.SemaTypeError,
		Message:  diag.MessageChain{Text: te.Msg},
	}
	if te.Soft {
		issue.Severity = diag.SevWarning
	}
	if pos.Filename != "" {
		issue.File = diag.AbsPath(pos.Filename)
		issue.Start = pos.Offset
	}
	return issue
}

// posFile extracts the file component of a loader position ("file:line:col"),
// empty when the position carries no file.
func posFile(pos string) string {
	if pos == "" || pos == "-" {
		return ""
	}
	if i := strings.Index(pos, ":"); i > 0 {
		return diag.AbsPath(pos[:i])
	}
	return diag.AbsPath(pos)
}

// sortIssues orders by file, then offset, then message for deterministic
// responses across runs.
func sortIssues(issues []diag.Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		a, b := issues[i], issues[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.Message.Text < b.Message.Text
	})
}
