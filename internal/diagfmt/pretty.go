package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"pulse/internal/diag"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	codeColor    = color.New(color.Faint)
)

// Pretty renders diagnostics in a human-readable form, one per line:
// <path>[:<start>-<end>]: <SEVERITY> <CODE>: <message>
// Multi-line messages are indented under the header line.
func Pretty(w io.Writer, diags []diag.Simple, opts PrettyOpts) {
	shown := diags
	if opts.Max > 0 && len(shown) > opts.Max {
		shown = shown[:opts.Max]
	}
	for _, d := range shown {
		fmt.Fprintln(w, prettyLine(d, opts))
	}
	if hidden := len(diags) - len(shown); hidden > 0 {
		fmt.Fprintf(w, "... and %d more\n", hidden)
	}
}

func prettyLine(d diag.Simple, opts PrettyOpts) string {
	sev := severityColor(d.Severity)
	sevText := d.Severity.String()
	codeText := d.Code.ID()
	if opts.Color {
		sevText = sev.Sprint(sevText)
		codeText = codeColor.Sprint(codeText)
	}

	loc := displayPath(d.FilePath, opts.PathMode, opts.BaseDir)
	if d.Located() {
		loc = fmt.Sprintf("%s:%d-%d", loc, *d.Start, *d.End)
	}

	head, rest := splitMessage(d.Message)
	line := fmt.Sprintf("%s: %s %s: %s", loc, sevText, codeText, head)
	for _, l := range rest {
		line += "\n    " + l
	}
	return line
}

// splitMessage separates the first line of a flattened message chain from
// the chained detail lines.
func splitMessage(msg string) (string, []string) {
	lines := strings.Split(msg, "\n")
	return lines[0], lines[1:]
}

func severityColor(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}
