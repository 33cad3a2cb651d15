package training

import "encoding/json"

// NoteValue is the fixed feedback vocabulary for set-level notes.
type NoteValue string

const (
	NoteHigh   NoteValue = "high"   // effort too high
	NoteNormal NoteValue = "normal" // as expected
	NoteLow    NoteValue = "low"    // felt easy
	NoteCustom NoteValue = "custom" // free-text note attached
)

// NoteValues lists the vocabulary in display order.
var NoteValues = []NoteValue{NoteHigh, NoteNormal, NoteLow, NoteCustom}

// Valid reports whether v belongs to the vocabulary.
func (v NoteValue) Valid() bool {
	switch v {
	case NoteHigh, NoteNormal, NoteLow, NoteCustom:
		return true
	}
	return false
}

// Note is one piece of set-level feedback. Text is only meaningful for
// NoteCustom.
type Note struct {
	Value NoteValue `json:"value"`
	Text  string    `json:"text,omitempty"`
}

// Notes maps set slots to feedback. Same lifecycle as Progress: entries
// are added or overwritten, never deleted.
type Notes map[SetKey]Note

// MarshalJSON emits the legacy flat form keyed by the delimited string.
func (n Notes) MarshalJSON() ([]byte, error) {
	flat := make(map[string]Note, len(n))
	for k, v := range n {
		flat[k.String()] = v
	}
	return json.Marshal(flat)
}

// UnmarshalJSON reads the legacy flat form, skipping malformed keys.
func (n *Notes) UnmarshalJSON(data []byte) error {
	var flat map[string]Note
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	if *n == nil {
		*n = make(Notes, len(flat))
	}
	for raw, note := range flat {
		_, setKey, isSet, err := ParseKey(raw)
		if err != nil || !isSet {
			continue
		}
		(*n)[setKey] = note
	}
	return nil
}
