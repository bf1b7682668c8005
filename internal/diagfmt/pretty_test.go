package diagfmt

import (
	"strings"
	"testing"

	"pulse/internal/diag"
)

func located(start, end uint32) (*uint32, *uint32) {
	return &start, &end
}

func TestPrettyRendersLocationAndCode(t *testing.T) {
	start, end := located(42, 49)
	var b strings.Builder
	Pretty(&b, []diag.Simple{{
		FilePath: "/proj/main.go",
		Start:    start,
		End:      end,
		Severity: diag.SevError,
		Code:     diag.SemaTypeError,
		Message:  "undefined: foo",
	}}, PrettyOpts{})

	out := b.String()
	if !strings.Contains(out, "/proj/main.go:42-49") {
		t.Fatalf("expected offset range in output: %q", out)
	}
	if !strings.Contains(out, "ERROR PULSE2001") {
		t.Fatalf("expected severity and code: %q", out)
	}
}

func TestPrettyIndentsChainedMessageLines(t *testing.T) {
	var b strings.Builder
	Pretty(&b, []diag.Simple{{
		Severity: diag.SevError,
		Code:     diag.SynParseError,
		Message:  "top\nchained detail",
	}}, PrettyOpts{})

	if !strings.Contains(b.String(), "\n    chained detail") {
		t.Fatalf("chained lines must be indented: %q", b.String())
	}
}

func TestPrettyTruncatesAtMax(t *testing.T) {
	diags := make([]diag.Simple, 5)
	for i := range diags {
		diags[i] = diag.Simple{Severity: diag.SevWarning, Code: diag.SynInfo, Message: "m"}
	}
	var b strings.Builder
	Pretty(&b, diags, PrettyOpts{Max: 2})

	if !strings.Contains(b.String(), "and 3 more") {
		t.Fatalf("expected truncation notice: %q", b.String())
	}
}

func TestDisplayPathModes(t *testing.T) {
	tests := []struct {
		mode PathMode
		base string
		want string
	}{
		{PathModeAbsolute, "", "/proj/pkg/main.go"},
		{PathModeRelative, "/proj", "pkg/main.go"},
		{PathModeBasename, "", "main.go"},
	}
	for _, tt := range tests {
		got := displayPath("/proj/pkg/main.go", tt.mode, tt.base)
		if got != tt.want {
			t.Errorf("mode %d: got %q, want %q", tt.mode, got, tt.want)
		}
	}
	if displayPath("", PathModeAbsolute, "") != "<no file>" {
		t.Errorf("empty path must render as placeholder")
	}
}
