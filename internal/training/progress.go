// Package training tracks what actually happened in a session: per-week
// exercise statuses, recorded reps and load per set, per-set feedback
// notes, and derived range/trend signals for display.
//
// Entries are keyed by (week, day index, exercise ID) or the same plus a
// set index. In memory the keys are structs; the legacy delimited string
// form ("week|day|exerciseId[|setIndex]") survives only as the storage
// and wire encoding. Entries are created or overwritten, never deleted:
// history outlives the routine entities it references.
package training

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Status is the exercise-level outcome for one week/day slot.
type Status string

const (
	StatusCompleted    Status = "C"
	StatusNotCompleted Status = "NC"
	StatusSubstituted  Status = "OE"

	// legacyStatusOJ is the historical spelling of StatusSubstituted,
	// still present in old persisted data.
	legacyStatusOJ Status = "OJ"
)

// Statuses lists the settable exercise statuses in display order.
var Statuses = []Status{StatusCompleted, StatusNotCompleted, StatusSubstituted}

// Canonical maps the legacy OJ spelling to OE and passes everything
// else through.
func (s Status) Canonical() Status {
	if s == legacyStatusOJ {
		return StatusSubstituted
	}
	return s
}

// Valid reports whether s is a known status, legacy spelling included.
func (s Status) Valid() bool {
	switch s {
	case StatusCompleted, StatusNotCompleted, StatusSubstituted, legacyStatusOJ:
		return true
	}
	return false
}

// Key addresses an exercise-level slot: one exercise on one day of one
// training week. Day is the zero-based day index within the routine, not
// the day key string — day keys renumber, indexes are what sessions see.
type Key struct {
	Week     int
	Day      int
	Exercise string
}

func (k Key) String() string {
	return fmt.Sprintf("%d|%d|%s", k.Week, k.Day, k.Exercise)
}

// Set returns the set-level key for index i under this slot.
func (k Key) Set(i int) SetKey {
	return SetKey{Key: k, Index: i}
}

// SetKey addresses one set within an exercise-level slot.
type SetKey struct {
	Key
	Index int
}

func (k SetKey) String() string {
	return fmt.Sprintf("%d|%d|%s|%d", k.Week, k.Day, k.Exercise, k.Index)
}

// ParseKey decodes the delimited string form. The returned SetKey is
// meaningful only when isSet is true.
func ParseKey(s string) (key Key, setKey SetKey, isSet bool, err error) {
	parts := strings.Split(s, "|")
	if len(parts) != 3 && len(parts) != 4 {
		return Key{}, SetKey{}, false, fmt.Errorf("training: malformed key %q", s)
	}
	week, err := strconv.Atoi(parts[0])
	if err != nil {
		return Key{}, SetKey{}, false, fmt.Errorf("training: malformed week in key %q", s)
	}
	day, err := strconv.Atoi(parts[1])
	if err != nil {
		return Key{}, SetKey{}, false, fmt.Errorf("training: malformed day in key %q", s)
	}
	key = Key{Week: week, Day: day, Exercise: parts[2]}
	if len(parts) == 3 {
		return key, SetKey{}, false, nil
	}
	idx, err := strconv.Atoi(parts[3])
	if err != nil {
		return Key{}, SetKey{}, false, fmt.Errorf("training: malformed set index in key %q", s)
	}
	return key, key.Set(idx), true, nil
}

// Field names a recordable value on a set.
type Field string

const (
	FieldReps Field = "reps"
	FieldPeso Field = "peso"
)

// SetRecord holds what the athlete reported for one set. Values are
// kept as entered (strings) — empty means not recorded.
type SetRecord struct {
	Reps string `json:"reps,omitempty"`
	Peso string `json:"peso,omitempty"`
}

// Get returns the named field's value.
func (r SetRecord) Get(f Field) string {
	if f == FieldPeso {
		return r.Peso
	}
	return r.Reps
}

// IsZero reports whether nothing was recorded.
func (r SetRecord) IsZero() bool {
	return r.Reps == "" && r.Peso == ""
}

// Progress is the full recorded history: statuses per exercise slot and
// records per set slot, all weeks coexisting in one flat structure.
type Progress struct {
	Statuses map[Key]Status
	Sets     map[SetKey]SetRecord
}

// NewProgress returns an empty history.
func NewProgress() *Progress {
	return &Progress{
		Statuses: make(map[Key]Status),
		Sets:     make(map[SetKey]SetRecord),
	}
}

// Status returns the canonical status for a slot, or "" if unset.
func (p *Progress) Status(k Key) Status {
	return p.Statuses[k].Canonical()
}

// SetStatus records an exercise-level status, canonicalizing the legacy
// spelling on the way in. The three statuses are mutually exclusive:
// whichever was set last wins.
func (p *Progress) SetStatus(k Key, s Status) {
	p.Statuses[k] = s.Canonical()
}

// Record returns the set record for a slot; the zero record if unset.
func (p *Progress) Record(k SetKey) SetRecord {
	return p.Sets[k]
}

// SetField records one field on a set slot, merging with whatever was
// already there.
func (p *Progress) SetField(k SetKey, f Field, value string) {
	rec := p.Sets[k]
	if f == FieldPeso {
		rec.Peso = value
	} else {
		rec.Reps = value
	}
	p.Sets[k] = rec
}

// Len returns the total number of entries, both levels combined.
func (p *Progress) Len() int {
	return len(p.Statuses) + len(p.Sets)
}

// MarshalJSON emits the legacy flat-object form: exercise keys map to
// status strings, set keys to {reps, peso} objects.
func (p *Progress) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, p.Len())
	for k, v := range p.Statuses {
		flat[k.String()] = string(v)
	}
	for k, v := range p.Sets {
		flat[k.String()] = v
	}
	return json.Marshal(flat)
}

// UnmarshalJSON reads the legacy flat form. Unknown or malformed keys
// are skipped — old installs accumulated stray entries and a load must
// never fail because of them.
func (p *Progress) UnmarshalJSON(data []byte) error {
	if p.Statuses == nil {
		p.Statuses = make(map[Key]Status)
	}
	if p.Sets == nil {
		p.Sets = make(map[SetKey]SetRecord)
	}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	var flat map[string]json.RawMessage
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	for raw, val := range flat {
		key, setKey, isSet, err := ParseKey(raw)
		if err != nil {
			continue
		}
		if isSet {
			var rec SetRecord
			if err := json.Unmarshal(val, &rec); err != nil {
				continue
			}
			p.Sets[setKey] = rec
			continue
		}
		var s Status
		if err := json.Unmarshal(val, &s); err != nil || !s.Valid() {
			continue
		}
		p.Statuses[key] = s.Canonical()
	}
	return nil
}
