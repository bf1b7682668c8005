package diag

import (
	"fmt"
)

// Code is the numeric classification of a diagnostic. Codes below 20000
// belong to engines; the 20000+ range is reserved for issues synthesized by
// Pulse itself and never produced by an analysis engine.
type Code uint16

const (
	UnknownCode Code = 0

	// Синтаксические (engine range)
	SynInfo       Code = 1000
	SynParseError Code = 1001

	// Семантические (engine range)
	SemaInfo      Code = 2000
	SemaTypeError Code = 2001

	// Project-level load problems (engine range)
	LoadInfo  Code = 3000
	LoadError Code = 3001

	// Synthesized by the registry, not by any engine.
	FileNotInProject Code = 20000
)

// Synthesized reports whether the code lies in the reserved range for
// issues Pulse fabricates itself.
func (c Code) Synthesized() bool {
	return c >= FileNotInProject
}

// ID returns the stable textual identifier, e.g. "PULSE2001".
func (c Code) ID() string {
	return fmt.Sprintf("PULSE%04d", uint16(c))
}

func (c Code) String() string {
	switch c {
	case SynParseError:
		return "syntax error"
	case SemaTypeError:
		return "type error"
	case LoadError:
		return "load error"
	case FileNotInProject:
		return "file not in project"
	}
	return c.ID()
}
