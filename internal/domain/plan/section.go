package plan

import (
	"encoding/json"
	"fmt"
)

// Section is a nested key-value block of a plan (market analysis,
// competition, and so on). Each key maps to either free text or an ordered
// list of text items; a section is always a well-formed mapping, never
// partially typed.
type Section map[string]Entry

// Entry is one value in a Section: free text or an ordered list of items.
// Exactly one of the two forms is set.
type Entry struct {
	Text  string
	Items []string
}

// IsList reports whether the entry holds an ordered list.
func (e Entry) IsList() bool { return e.Items != nil }

// MarshalJSON encodes the entry as a bare string or a string array,
// matching the shape ingested documents use.
func (e Entry) MarshalJSON() ([]byte, error) {
	if e.Items != nil {
		return json.Marshal(e.Items)
	}
	return json.Marshal(e.Text)
}

// UnmarshalJSON accepts either a string or an array of strings.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		e.Text = s
		e.Items = nil
		return nil
	}

	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		e.Text = ""
		if items == nil {
			items = []string{}
		}
		e.Items = items
		return nil
	}

	return fmt.Errorf("section entry must be a string or an array of strings")
}
