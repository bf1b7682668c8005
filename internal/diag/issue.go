package diag

import "strings"

// MessageChain is a raw engine message: a head text plus optional chained
// sub-messages. Engines are free to nest arbitrarily deep; the wire format
// never carries the structure.
type MessageChain struct {
	Text    string
	Chained []MessageChain
}

// Flatten joins the chain depth-first into a single newline-separated string.
func (m MessageChain) Flatten() string {
	var sb strings.Builder
	m.flattenInto(&sb)
	return sb.String()
}

func (m MessageChain) flattenInto(sb *strings.Builder) {
	if sb.Len() > 0 {
		sb.WriteByte('\n')
	}
	sb.WriteString(m.Text)
	for _, c := range m.Chained {
		c.flattenInto(sb)
	}
}

// Issue is a raw engine-reported problem, before normalization.
// Start is a character offset into the file's text; Start < 0 means the
// engine attached no precise location. File may be empty for file-less
// issues and may be relative to the engine's working directory.
type Issue struct {
	File     string
	Start    int
	Length   int
	Severity Severity
	Code     Code
	Message  MessageChain
}
