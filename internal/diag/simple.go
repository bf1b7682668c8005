package diag

import "fmt"

// Simple is the normalized diagnostic record carried over the status
// channel.
//
// FilePath, when non-empty, is always absolute and filesystem-normalized;
// callers must not compare it against non-normalized paths. Start/End are
// half-open character offsets; either both are set or both are nil.
// Invariant: Start != nil implies End != nil and *End >= *Start.
type Simple struct {
	FilePath string   `msgpack:"file_path" json:"file_path,omitempty"`
	Start    *uint32  `msgpack:"start" json:"start,omitempty"`
	End      *uint32  `msgpack:"end" json:"end,omitempty"`
	Severity Severity `msgpack:"severity" json:"severity"`
	Code     Code     `msgpack:"code" json:"code"`
	Message  string   `msgpack:"message" json:"message"`
}

// Located reports whether the diagnostic carries a precise offset range.
func (s Simple) Located() bool {
	return s.Start != nil
}

func (s Simple) String() string {
	if s.FilePath == "" {
		return fmt.Sprintf("[%s] %s: %s", s.Code.ID(), s.Severity, s.Message)
	}
	if !s.Located() {
		return fmt.Sprintf("%s: [%s] %s: %s", s.FilePath, s.Code.ID(), s.Severity, s.Message)
	}
	return fmt.Sprintf("%s:%d-%d: [%s] %s: %s", s.FilePath, *s.Start, *s.End, s.Code.ID(), s.Severity, s.Message)
}
