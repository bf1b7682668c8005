package diagfmt

import (
	"encoding/json"
	"io"

	"pulse/internal/diag"
)

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string  `json:"severity"`
	Code     string  `json:"code"`
	Message  string  `json:"message"`
	File     string  `json:"file,omitempty"`
	Start    *uint32 `json:"start,omitempty"`
	End      *uint32 `json:"end,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Truncated   bool             `json:"truncated,omitempty"`
}

// JSON renders diagnostics as an indented JSON document. Count always
// reflects the full set even when Max truncates the list.
func JSON(w io.Writer, diags []diag.Simple, opts JSONOpts) error {
	shown := diags
	if opts.Max > 0 && len(shown) > opts.Max {
		shown = shown[:opts.Max]
	}
	out := DiagnosticsOutput{
		Diagnostics: make([]DiagnosticJSON, 0, len(shown)),
		Count:       len(diags),
		Truncated:   len(shown) < len(diags),
	}
	for _, d := range shown {
		rec := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
			Start:    d.Start,
			End:      d.End,
		}
		if d.FilePath != "" {
			rec.File = displayPath(d.FilePath, opts.PathMode, opts.BaseDir)
		}
		out.Diagnostics = append(out.Diagnostics, rec)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
