package vcon

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

// Version is the single vCon schema version this tool understands.
const Version = "0.0.1"

// Presence describes how a field appears in a document.
type Presence int

const (
	// Absent means the key does not exist in the document.
	Absent Presence = iota
	// WrongType means the key exists but holds a different JSON type
	// than the accessor asked for.
	WrongType
	// Present means the key exists and has the requested type.
	Present
)

// String returns a human-readable representation of the presence state.
func (p Presence) String() string {
	switch p {
	case Absent:
		return "absent"
	case WrongType:
		return "wrong type"
	case Present:
		return "present"
	default:
		return "unknown"
	}
}

// Document is a vCon-shaped view over a generic parsed JSON value.
//
// The underlying value is whatever the decoder produced: for well-formed
// documents a map[string]any, but a Document can also wrap an array, a
// string, or any other JSON value so that shape problems reach the rule
// engine instead of being rejected at parse time.
type Document struct {
	raw any
}

// New wraps an already-parsed JSON value.
func New(raw any) *Document {
	return &Document{raw: raw}
}

// Parse decodes JSON bytes into a Document. Numbers decode as float64,
// matching the generic decoding the rule set was written against.
func Parse(data []byte) (*Document, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return &Document{raw: raw}, nil
}

// ReadFile reads and parses a vCon JSON file from the given path.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc, nil
}

// IsObject reports whether the document root is a JSON object.
func (d *Document) IsObject() bool {
	_, ok := d.raw.(map[string]any)
	return ok
}

// Raw returns the underlying parsed value.
func (d *Document) Raw() any {
	return d.raw
}

// Object returns the root object, or nil if the root is not an object.
// The map is the live document state; the migrate package mutates it
// in place.
func (d *Document) Object() map[string]any {
	obj, _ := d.raw.(map[string]any)
	return obj
}

// Has reports whether the root object contains the given key. A non-object
// root has no keys.
func (d *Document) Has(key string) bool {
	obj := d.Object()
	if obj == nil {
		return false
	}
	_, ok := obj[key]
	return ok
}

// Get returns the raw value for a root key and whether the key exists.
func (d *Document) Get(key string) (any, bool) {
	obj := d.Object()
	if obj == nil {
		return nil, false
	}
	v, ok := obj[key]
	return v, ok
}

// String returns a root field as a string with its presence state.
func (d *Document) String(key string) (string, Presence) {
	v, ok := d.Get(key)
	if !ok {
		return "", Absent
	}
	s, ok := v.(string)
	if !ok {
		return "", WrongType
	}
	return s, Present
}

// Array returns a root field as a JSON array with its presence state.
func (d *Document) Array(key string) ([]any, Presence) {
	v, ok := d.Get(key)
	if !ok {
		return nil, Absent
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, WrongType
	}
	return arr, Present
}

// Entry is a loose-typed view over one element of a document array
// (a party, dialog, analysis, or attachment entry).
type Entry struct {
	raw any
}

// AsEntry wraps an array element. Like Document, it tolerates any shape;
// IsObject distinguishes usable entries from garbage elements.
func AsEntry(raw any) Entry {
	return Entry{raw: raw}
}

// IsObject reports whether the entry is a JSON object.
func (e Entry) IsObject() bool {
	_, ok := e.raw.(map[string]any)
	return ok
}

// Has reports whether the entry object contains the given key.
func (e Entry) Has(key string) bool {
	obj, ok := e.raw.(map[string]any)
	if !ok {
		return false
	}
	_, ok = obj[key]
	return ok
}

// Get returns the raw value for a key and whether the key exists.
func (e Entry) Get(key string) (any, bool) {
	obj, ok := e.raw.(map[string]any)
	if !ok {
		return nil, false
	}
	v, ok := obj[key]
	return v, ok
}

// String returns an entry field as a string with its presence state.
func (e Entry) String(key string) (string, Presence) {
	v, ok := e.Get(key)
	if !ok {
		return "", Absent
	}
	s, ok := v.(string)
	if !ok {
		return "", WrongType
	}
	return s, Present
}

// Number returns an entry field as a float64 with its presence state.
// Integers and floats both qualify; the decoder produces float64 for every
// JSON number.
func (e Entry) Number(key string) (float64, Presence) {
	v, ok := e.Get(key)
	if !ok {
		return 0, Absent
	}
	switch n := v.(type) {
	case float64:
		return n, Present
	case int:
		return float64(n), Present
	case int64:
		return float64(n), Present
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, WrongType
		}
		return f, Present
	default:
		return 0, WrongType
	}
}
