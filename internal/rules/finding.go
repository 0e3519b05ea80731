// Package rules implements the vCon validation rule set.
//
// The engine walks a parsed document and produces an ordered list of
// findings: document-level checks first, then per-element checks for the
// parties, dialog, analysis, and attachments arrays, then the mutual
// exclusivity check over the historical markers. Rules never mutate the
// document and never panic on malformed shapes; a field with the wrong JSON
// type becomes a finding, not a fault.
package rules

import "fmt"

// Kind identifies which entity a finding is about.
type Kind int

const (
	// KindDocument marks a finding about the document itself.
	KindDocument Kind = iota
	// KindParty marks a finding about one element of the parties array.
	KindParty
	// KindDialog marks a finding about one element of the dialog array.
	KindDialog
	// KindAnalysis marks a finding about one element of the analysis array.
	KindAnalysis
	// KindAttachment marks a finding about one element of the attachments array.
	KindAttachment
)

// String returns a human-readable representation of the entity kind.
func (k Kind) String() string {
	switch k {
	case KindDocument:
		return "document"
	case KindParty:
		return "party"
	case KindDialog:
		return "dialog"
	case KindAnalysis:
		return "analysis"
	case KindAttachment:
		return "attachment"
	default:
		return "unknown"
	}
}

// Finding is one validation error tied to an entity and its zero-based
// position within its containing array. Document-level findings carry
// Index -1.
type Finding struct {
	Kind    Kind
	Index   int
	Message string
}

// String returns the rendered finding message.
func (f Finding) String() string {
	return f.Message
}

func docFinding(format string, args ...any) Finding {
	return Finding{Kind: KindDocument, Index: -1, Message: fmt.Sprintf(format, args...)}
}

func entityFinding(kind Kind, index int, format string, args ...any) Finding {
	return Finding{Kind: kind, Index: index, Message: fmt.Sprintf(format, args...)}
}

// Messages renders a finding list to plain strings, in order.
func Messages(findings []Finding) []string {
	if len(findings) == 0 {
		return nil
	}
	out := make([]string, len(findings))
	for i, f := range findings {
		out[i] = f.String()
	}
	return out
}
