// Package routine implements the routine document model: an ordered
// mapping from day keys (day1..dayN) to exercise lists, with a
// normalizer that heals legacy shapes and a pure mutation API addressed
// by day key, exercise ID, and set ID.
package routine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// DayPrefix is the canonical day-key prefix.
const DayPrefix = "day"

// ExtraOptions is the technique-modifier vocabulary for sets, in toggle
// order. ToggleSerieExtra cycles through it and wraps.
var ExtraOptions = []string{"Ninguno", "Descendentes", "Mio Reps", "Parciales"}

// DefaultExtra is the technique modifier assigned when none is present.
const DefaultExtra = "Ninguno"

// Default rep range for sets missing a prescription.
const (
	DefaultRepMin = "6"
	DefaultRepMax = "8"
)

// Fallo is the rep-range sentinel meaning "to failure": no numeric range
// check applies to a set carrying it in either bound.
const Fallo = "fallo"

// Set is one prescribed unit of work within an exercise. RepMin and
// RepMax are numeric strings or the Fallo sentinel. RepMin may exceed
// RepMax: the editor applies no cross-validation, and downstream
// consumers must not assume an ordered range.
type Set struct {
	ID     string `json:"id"`
	RepMin string `json:"repMin"`
	RepMax string `json:"repMax"`
	Extra  string `json:"extra"`
	Nota   string `json:"nota,omitempty"`
}

// IsFallo reports whether either bound carries the failure sentinel.
func (s Set) IsFallo() bool {
	return strings.EqualFold(strings.TrimSpace(s.RepMin), Fallo) ||
		strings.EqualFold(strings.TrimSpace(s.RepMax), Fallo)
}

// Exercise is a named movement within a day. ID is permanent once
// assigned and is the addressing key for mutations and progress lookups.
// DBID links to the exercise catalog when the movement was picked from
// it; nil for free-text entries.
type Exercise struct {
	ID      string  `json:"id"`
	Musculo string  `json:"musculo"`
	Nombre  string  `json:"nombre"`
	DBID    *string `json:"dbId"`
	Extra   string  `json:"extra,omitempty"`
	Series  []Set   `json:"series"`
}

// Day is one training day: a canonical key plus its exercise list.
type Day struct {
	Key       string
	Exercises []Exercise
}

// Routine is an ordered list of days. The persisted JSON shape is an
// object whose keys appear in day order: {"day1":[...],"day2":[...]}.
// Day identity is positional for reorder operations and key-based for
// lookups; Normalize renumbers keys to match position.
type Routine []Day

// Keys returns the day keys in order.
func (r Routine) Keys() []string {
	keys := make([]string, len(r))
	for i, d := range r {
		keys[i] = d.Key
	}
	return keys
}

// DayIndex returns the position of dayKey, or -1 if absent.
func (r Routine) DayIndex(dayKey string) int {
	for i, d := range r {
		if d.Key == dayKey {
			return i
		}
	}
	return -1
}

// Exercises returns the exercise list for dayKey, or nil if absent.
func (r Routine) Exercises(dayKey string) []Exercise {
	if i := r.DayIndex(dayKey); i >= 0 {
		return r[i].Exercises
	}
	return nil
}

// FindExercise returns the exercise with the given ID within dayKey.
func (r Routine) FindExercise(dayKey, exerciseID string) (Exercise, bool) {
	for _, e := range r.Exercises(dayKey) {
		if e.ID == exerciseID {
			return e, true
		}
	}
	return Exercise{}, false
}

// Clone returns a deep copy. Mutation operations copy before editing so
// every returned routine is an independent snapshot.
func (r Routine) Clone() Routine {
	if r == nil {
		return nil
	}
	out := make(Routine, len(r))
	for i, d := range r {
		nd := Day{Key: d.Key}
		if d.Exercises != nil {
			nd.Exercises = make([]Exercise, len(d.Exercises))
			for j, e := range d.Exercises {
				ne := e
				if e.Series != nil {
					ne.Series = append([]Set(nil), e.Series...)
				}
				if e.DBID != nil {
					v := *e.DBID
					ne.DBID = &v
				}
				nd.Exercises[j] = ne
			}
		}
		out[i] = nd
	}
	return out
}

// MarshalJSON emits the object form with day keys in routine order.
func (r Routine) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, d := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(d.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		exs := d.Exercises
		if exs == nil {
			exs = []Exercise{}
		}
		val, err := json.Marshal(exs)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads the object form preserving document key order.
// A plain map decode would shuffle days, so keys are walked at the
// token level. Day values that are not exercise arrays decode to an
// empty day rather than failing: malformed legacy documents are healed
// by Normalize, never rejected.
func (r *Routine) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*r = nil
		return nil
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != '{' {
		return fmt.Errorf("routine: expected object, got %v", tok)
	}

	var out Routine
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}

		day := Day{Key: key}
		var exs []Exercise
		if err := json.Unmarshal(raw, &exs); err == nil {
			day.Exercises = exs
		}
		out = append(out, day)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	*r = out
	return nil
}

// dayNumber extracts the numeric suffix of a day key; ok is false for
// keys that do not parse.
func dayNumber(key string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimPrefix(key, DayPrefix))
	if err != nil {
		return 0, false
	}
	return n, true
}

// nextDayKey returns the key for a newly inserted day: max numeric
// suffix across existing keys, plus one. This deliberately differs from
// Normalize's positional renumbering — a routine that has seen deletes
// can hold gaps until the next normalize pass.
func nextDayKey(r Routine) string {
	max := 0
	for _, d := range r {
		if n, ok := dayNumber(d.Key); ok && n > max {
			max = n
		}
	}
	return DayPrefix + strconv.Itoa(max+1)
}
