package diag

import (
	"path/filepath"

	"fortio.org/safecast"
)

// Normalize converts one raw engine issue into exactly one Simple record.
// It is a total transform: malformed locations degrade to "no location"
// rather than failing.
func Normalize(issue Issue) Simple {
	s := Simple{
		Severity: issue.Severity,
		Code:     issue.Code,
		Message:  issue.Message.Flatten(),
	}
	if issue.File != "" {
		s.FilePath = AbsPath(issue.File)
	}
	if issue.File != "" && issue.Start >= 0 {
		start, err := safecast.Convert[uint32](issue.Start)
		if err != nil {
			return s
		}
		length := issue.Length
		if length < 0 {
			length = 0
		}
		end, err := safecast.Convert[uint32](issue.Start + length)
		if err != nil {
			end = start
		}
		s.Start = &start
		s.End = &end
	}
	return s
}

// NormalizeAll maps Normalize over a slice, preserving order.
func NormalizeAll(issues []Issue) []Simple {
	if len(issues) == 0 {
		return nil
	}
	out := make([]Simple, 0, len(issues))
	for _, issue := range issues {
		out = append(out, Normalize(issue))
	}
	return out
}

// AbsPath resolves path to its absolute, cleaned form. A path that cannot
// be resolved (unreadable working directory) is returned cleaned as-is;
// membership matching will then simply not find it.
func AbsPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
