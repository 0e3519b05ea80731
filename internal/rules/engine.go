package rules

import (
	"math"
	"strings"

	"github.com/vcon-dev/vconlint/internal/vcon"
)

// DialogTypes is the set of dialog entry types the schema allows.
var DialogTypes = []string{"recording", "text", "transfer", "incomplete"}

// exclusiveMarkers are historical top-level keys of which at most one may be
// present on a document.
var exclusiveMarkers = []string{"redacted", "appended", "group"}

// requiredFields are the top-level keys every vCon must carry.
var requiredFields = []string{"vcon", "uuid", "created_at"}

// Validate applies the full rule set to a document and returns every finding
// in a fixed order. An empty result means the document is fully conformant.
// The document is never mutated; malformed shapes degrade to findings.
func Validate(doc *vcon.Document) []Finding {
	if !doc.IsObject() {
		return []Finding{docFinding("vCon must be a JSON object")}
	}

	var findings []Finding

	for _, field := range requiredFields {
		if !doc.Has(field) {
			findings = append(findings, docFinding("Missing required field: %s", field))
		}
	}

	if doc.Has("vcon") {
		if v, p := doc.String("vcon"); p != vcon.Present || v != vcon.Version {
			findings = append(findings, docFinding("Invalid vcon version. Expected '%s'", vcon.Version))
		}
	}

	if doc.Has("uuid") {
		if _, p := doc.String("uuid"); p != vcon.Present {
			findings = append(findings, docFinding("UUID must be a string"))
		}
	}

	findings = append(findings, checkTimestampField(doc, "created_at")...)
	findings = append(findings, checkTimestampField(doc, "updated_at")...)

	findings = append(findings, checkArrayField(doc, "parties", KindParty, validateParty)...)
	findings = append(findings, checkArrayField(doc, "dialog", KindDialog, validateDialog)...)
	findings = append(findings, checkArrayField(doc, "analysis", KindAnalysis, validateAnalysis)...)
	// Attachments are a placeholder entity: any element shape passes, so
	// only the array-ness of the field itself is checked.
	findings = append(findings, checkArrayField(doc, "attachments", KindAttachment, nil)...)

	if countPresent(doc, exclusiveMarkers) > 1 {
		findings = append(findings, docFinding("redacted, appended, and group are mutually exclusive"))
	}

	return findings
}

// countPresent counts how many of the given keys exist on the document.
// Kept generic so further exclusive-key groups can reuse it.
func countPresent(doc *vcon.Document, keys []string) int {
	n := 0
	for _, key := range keys {
		if doc.Has(key) {
			n++
		}
	}
	return n
}

// checkTimestampField validates an optional top-level timestamp field.
func checkTimestampField(doc *vcon.Document, field string) []Finding {
	if !doc.Has(field) {
		return nil
	}
	s, p := doc.String(field)
	if p != vcon.Present {
		return []Finding{docFinding("%s must be a string", field)}
	}
	if !ValidTimestamp(s) {
		return []Finding{docFinding("Invalid %s date format", field)}
	}
	return nil
}

// checkArrayField applies the array-then-element pattern: an optional field
// that, when present, must be an array whose every element is validated at
// its zero-based position. A non-array value yields one finding and the
// per-element checks are skipped. A nil validate leaves the elements
// entirely unconstrained.
func checkArrayField(doc *vcon.Document, field string, kind Kind, validate func(vcon.Entry, int) []Finding) []Finding {
	if !doc.Has(field) {
		return nil
	}
	arr, p := doc.Array(field)
	if p != vcon.Present {
		return []Finding{docFinding("%s must be an array", field)}
	}
	if validate == nil {
		return nil
	}
	var findings []Finding
	for i, elem := range arr {
		entry := vcon.AsEntry(elem)
		if !entry.IsObject() {
			findings = append(findings, entityFinding(kind, i, "%s %d must be an object", titleFor(kind), i))
			continue
		}
		findings = append(findings, validate(entry, i)...)
	}
	return findings
}

func titleFor(kind Kind) string {
	switch kind {
	case KindParty:
		return "Party"
	case KindDialog:
		return "Dialog"
	case KindAnalysis:
		return "Analysis"
	case KindAttachment:
		return "Attachment"
	default:
		return "Entry"
	}
}

// validateParty checks one element of the parties array. A party must carry
// at least one identifier; tel values must start with "+" and mailto values
// must contain "@". Both format checks confirm the value is actually a
// string first so a wrong-typed field becomes a finding rather than a fault.
func validateParty(party vcon.Entry, index int) []Finding {
	var findings []Finding

	if !party.Has("tel") && !party.Has("mailto") && !party.Has("name") {
		findings = append(findings, entityFinding(KindParty, index,
			"Party %d must have at least one identifier (tel, mailto, or name)", index))
	}

	if party.Has("tel") {
		tel, p := party.String("tel")
		if p != vcon.Present {
			findings = append(findings, entityFinding(KindParty, index, "Party %d: tel must be a string", index))
		} else if !strings.HasPrefix(tel, "+") {
			findings = append(findings, entityFinding(KindParty, index, "Party %d: tel must start with '+'", index))
		}
	}

	if party.Has("mailto") {
		mailto, p := party.String("mailto")
		if p != vcon.Present {
			findings = append(findings, entityFinding(KindParty, index, "Party %d: mailto must be a string", index))
		} else if !strings.Contains(mailto, "@") {
			findings = append(findings, entityFinding(KindParty, index, "Party %d: invalid mailto format", index))
		}
	}

	return findings
}

// validateDialog checks one element of the dialog array.
func validateDialog(dialog vcon.Entry, index int) []Finding {
	var findings []Finding

	for _, field := range []string{"type", "start", "parties"} {
		if !dialog.Has(field) {
			findings = append(findings, entityFinding(KindDialog, index,
				"Dialog %d: Missing required field: %s", index, field))
		}
	}

	if dialog.Has("type") {
		typ, p := dialog.String("type")
		if p != vcon.Present || !validDialogType(typ) {
			findings = append(findings, entityFinding(KindDialog, index,
				"Dialog %d: Invalid type. Must be one of [%s]", index, strings.Join(DialogTypes, ", ")))
		}
	}

	if dialog.Has("start") {
		start, p := dialog.String("start")
		if p != vcon.Present {
			findings = append(findings, entityFinding(KindDialog, index, "Dialog %d: start must be a string", index))
		} else if !ValidTimestamp(start) {
			findings = append(findings, entityFinding(KindDialog, index, "Dialog %d: Invalid start date format", index))
		}
	}

	if v, ok := dialog.Get("parties"); ok && !validPartiesRef(v) {
		findings = append(findings, entityFinding(KindDialog, index,
			"Dialog %d: parties must be an integer or an array of integers", index))
	}

	if dialog.Has("duration") {
		if _, p := dialog.Number("duration"); p != vcon.Present {
			findings = append(findings, entityFinding(KindDialog, index, "Dialog %d: duration must be a number", index))
		}
	}

	return findings
}

// validateAnalysis checks one element of the analysis array. Only the type
// field is constrained; the rest of the entry is open for extension.
func validateAnalysis(analysis vcon.Entry, index int) []Finding {
	if !analysis.Has("type") {
		return []Finding{entityFinding(KindAnalysis, index, "Analysis %d: Missing required field: type", index)}
	}
	return nil
}

func validDialogType(typ string) bool {
	for _, t := range DialogTypes {
		if typ == t {
			return true
		}
	}
	return false
}

// validPartiesRef accepts an integer-valued number or an array. The indices
// inside the array are deliberately not checked against the parties array;
// that gap is part of the current rule version.
func validPartiesRef(v any) bool {
	switch n := v.(type) {
	case float64:
		return n == math.Trunc(n)
	case []any:
		return true
	default:
		return false
	}
}
