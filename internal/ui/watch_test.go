package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"pulse/internal/diag"
)

func TestWatchModelRendersFetchedDiagnostics(t *testing.T) {
	start, end := uint32(3), uint32(7)
	m := NewWatchModel(nil, time.Second).(*watchModel)

	next, _ := m.Update(errorsMsg{diags: []diag.Simple{{
		FilePath: "/p/main.go",
		Start:    &start,
		End:      &end,
		Severity: diag.SevError,
		Code:     diag.SemaTypeError,
		Message:  "undefined: x",
	}}})
	view := next.(*watchModel).View()
	if !strings.Contains(view, "1 issue(s)") {
		t.Fatalf("expected issue count in view:\n%s", view)
	}
	if !strings.Contains(view, "undefined: x") {
		t.Fatalf("expected message in view:\n%s", view)
	}
}

func TestWatchModelRendersHostUnreachable(t *testing.T) {
	m := NewWatchModel(nil, time.Second).(*watchModel)
	next, _ := m.Update(errorsMsg{err: errors.New("connection refused")})
	view := next.(*watchModel).View()
	if !strings.Contains(view, "host unreachable") {
		t.Fatalf("expected offline notice:\n%s", view)
	}
}

func TestWatchModelEmptyStateIsClean(t *testing.T) {
	m := NewWatchModel(nil, time.Second).(*watchModel)
	next, _ := m.Update(errorsMsg{diags: []diag.Simple{}})
	view := next.(*watchModel).View()
	if !strings.Contains(view, "no errors") {
		t.Fatalf("expected clean state:\n%s", view)
	}
}
