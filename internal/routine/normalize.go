package routine

import (
	"encoding/json"
	"strconv"

	"github.com/meltforce/repbook/internal/ident"
)

// Normalize produces the canonical form of a possibly legacy or partial
// routine document:
//
//   - at least one day, keyed day1
//   - day keys renumbered to day<position+1>, original keys discarded
//   - every exercise and set carries a permanent non-empty ID; existing
//     IDs are preserved, missing ones are minted
//   - missing fields filled with defaults (empty musculo/nombre,
//     "Ninguno" technique, 6–8 rep range)
//
// Normalize is idempotent: a second pass changes nothing except that
// day keys may be reassigned when day order changed since the last one.
func Normalize(in Routine) Routine {
	base := in
	if len(base) == 0 {
		base = Routine{{Key: DayPrefix + "1"}}
	}

	out := make(Routine, len(base))
	for i, d := range base {
		nd := Day{Key: dayKey(i)}
		nd.Exercises = make([]Exercise, len(d.Exercises))
		for j, e := range d.Exercises {
			nd.Exercises[j] = normalizeExercise(e)
		}
		out[i] = nd
	}
	return out
}

// ParseAndNormalize decodes a raw JSON document and normalizes it.
// Undecodable input is treated as absent: the result is a fresh
// single-day routine, never an error.
func ParseAndNormalize(raw []byte) Routine {
	var r Routine
	if len(raw) > 0 {
		// Decode errors fall through to Normalize(nil).
		_ = json.Unmarshal(raw, &r)
	}
	return Normalize(r)
}

func dayKey(pos int) string {
	return DayPrefix + strconv.Itoa(pos+1)
}

func normalizeExercise(e Exercise) Exercise {
	if e.ID == "" {
		e.ID = ident.Exercise()
	}
	if e.Extra == "" {
		e.Extra = DefaultExtra
	}
	series := make([]Set, len(e.Series))
	for i, s := range e.Series {
		series[i] = normalizeSet(s, e.ID, i)
	}
	e.Series = series
	return e
}

func normalizeSet(s Set, exerciseID string, pos int) Set {
	if s.ID == "" {
		s.ID = ident.Set(exerciseID, pos)
	}
	if s.RepMin == "" {
		s.RepMin = DefaultRepMin
	}
	if s.RepMax == "" {
		s.RepMax = DefaultRepMax
	}
	if s.Extra == "" {
		s.Extra = DefaultExtra
	}
	return s
}
