package routine

import "github.com/meltforce/repbook/internal/ident"

// Mutation operations are pure: each returns a new routine snapshot and
// leaves its input untouched. Addressing a day, exercise, or set that no
// longer exists is a silent no-op and the input is returned as-is —
// stale addresses are an expected UI race, not an error.

const newExerciseSets = 3

// MoveDay swaps the day at dayKey with its neighbor in the given
// direction (-1 up, +1 down). No-op at the boundaries.
func MoveDay(r Routine, dayKey string, dir int) Routine {
	idx := r.DayIndex(dayKey)
	if idx < 0 {
		return r
	}
	tgt := idx + dir
	if tgt < 0 || tgt >= len(r) {
		return r
	}
	out := r.Clone()
	out[idx], out[tgt] = out[tgt], out[idx]
	return out
}

// InsertDayAfter inserts a new empty day immediately after dayKey, or at
// the end when dayKey is not found. The new key is the highest numeric
// suffix in use plus one (see nextDayKey), and is returned so the caller
// can open the day in the UI.
func InsertDayAfter(r Routine, dayKey string) (Routine, string) {
	key := nextDayKey(r)
	idx := r.DayIndex(dayKey)
	after := len(r)
	if idx >= 0 {
		after = idx + 1
	}
	out := r.Clone()
	out = append(out[:after], append(Routine{{Key: key}}, out[after:]...)...)
	return out, key
}

// DeleteDay removes the day entirely. Exercises within it are discarded;
// their historical progress entries are deliberately left in place.
func DeleteDay(r Routine, dayKey string) Routine {
	idx := r.DayIndex(dayKey)
	if idx < 0 {
		return r
	}
	out := r.Clone()
	return append(out[:idx], out[idx+1:]...)
}

// MoveExercise swaps the addressed exercise with its neighbor within one
// day's list. No-op at the boundaries or on a missing address.
func MoveExercise(r Routine, dayKey, exerciseID string, dir int) Routine {
	di := r.DayIndex(dayKey)
	if di < 0 {
		return r
	}
	list := r[di].Exercises
	idx := exerciseIndex(list, exerciseID)
	if idx < 0 {
		return r
	}
	tgt := idx + dir
	if tgt < 0 || tgt >= len(list) {
		return r
	}
	out := r.Clone()
	l := out[di].Exercises
	l[idx], l[tgt] = l[tgt], l[idx]
	return out
}

// AddExerciseAfter inserts a blank exercise with three default sets
// immediately after afterID, or at the end of the day when afterID is
// not found. Returns the new exercise's ID.
func AddExerciseAfter(r Routine, dayKey, afterID string) (Routine, string) {
	di := r.DayIndex(dayKey)
	if di < 0 {
		return r, ""
	}
	list := r[di].Exercises
	pos := len(list)
	if idx := exerciseIndex(list, afterID); idx >= 0 {
		pos = idx + 1
	}
	ex := newExercise()
	out := r.Clone()
	l := out[di].Exercises
	out[di].Exercises = append(l[:pos], append([]Exercise{ex}, l[pos:]...)...)
	return out, ex.ID
}

// AddExerciseAtEnd appends a blank exercise with three default sets to
// the day. Returns the new exercise's ID.
func AddExerciseAtEnd(r Routine, dayKey string) (Routine, string) {
	di := r.DayIndex(dayKey)
	if di < 0 {
		return r, ""
	}
	ex := newExercise()
	out := r.Clone()
	out[di].Exercises = append(out[di].Exercises, ex)
	return out, ex.ID
}

// DeleteExercise removes the addressed exercise. Historical progress
// entries referencing its ID are kept.
func DeleteExercise(r Routine, dayKey, exerciseID string) Routine {
	di := r.DayIndex(dayKey)
	if di < 0 {
		return r
	}
	idx := exerciseIndex(r[di].Exercises, exerciseID)
	if idx < 0 {
		return r
	}
	out := r.Clone()
	l := out[di].Exercises
	out[di].Exercises = append(l[:idx], l[idx+1:]...)
	return out
}

// UpdateExerciseField replaces one field on the addressed exercise.
// Field names are the wire names (musculo, nombre, extra, dbId); an
// unknown field is a no-op — validation is the caller's concern.
func UpdateExerciseField(r Routine, dayKey, exerciseID, field, value string) Routine {
	return withExercise(r, dayKey, exerciseID, func(e *Exercise) {
		switch field {
		case "musculo":
			e.Musculo = value
		case "nombre":
			e.Nombre = value
		case "extra":
			e.Extra = value
		case "dbId":
			if value == "" {
				e.DBID = nil
			} else {
				v := value
				e.DBID = &v
			}
		}
	})
}

// AddSerie appends a default set to the addressed exercise and returns
// the new set's ID.
func AddSerie(r Routine, dayKey, exerciseID string) (Routine, string) {
	var id string
	out := withExercise(r, dayKey, exerciseID, func(e *Exercise) {
		s := Set{
			ID:     ident.Set(e.ID, len(e.Series)+1),
			RepMin: DefaultRepMin,
			RepMax: DefaultRepMax,
			Extra:  DefaultExtra,
		}
		id = s.ID
		e.Series = append(e.Series, s)
	})
	return out, id
}

// UpdateSerieField replaces one field on the addressed set. Wire field
// names: repMin, repMax, extra, nota. No cross-validation is applied;
// repMin may end up greater than repMax.
func UpdateSerieField(r Routine, dayKey, exerciseID, serieID, field, value string) Routine {
	return withSerie(r, dayKey, exerciseID, serieID, func(s *Set) {
		switch field {
		case "repMin":
			s.RepMin = value
		case "repMax":
			s.RepMax = value
		case "extra":
			s.Extra = value
		case "nota":
			s.Nota = value
		}
	})
}

// ToggleSerieExtra advances the set's technique modifier through
// ExtraOptions, wrapping at the end. An unrecognized current value is
// treated as "Ninguno".
func ToggleSerieExtra(r Routine, dayKey, exerciseID, serieID string) Routine {
	return withSerie(r, dayKey, exerciseID, serieID, func(s *Set) {
		cur := s.Extra
		if cur == "" {
			cur = DefaultExtra
		}
		idx := 0
		for i, opt := range ExtraOptions {
			if opt == cur {
				idx = i
				break
			}
		}
		s.Extra = ExtraOptions[(idx+1)%len(ExtraOptions)]
	})
}

// DeleteSerie removes the addressed set.
func DeleteSerie(r Routine, dayKey, exerciseID, serieID string) Routine {
	di := r.DayIndex(dayKey)
	if di < 0 {
		return r
	}
	ei := exerciseIndex(r[di].Exercises, exerciseID)
	if ei < 0 {
		return r
	}
	si := serieIndex(r[di].Exercises[ei].Series, serieID)
	if si < 0 {
		return r
	}
	out := r.Clone()
	series := out[di].Exercises[ei].Series
	out[di].Exercises[ei].Series = append(series[:si], series[si+1:]...)
	return out
}

func newExercise() Exercise {
	id := ident.Exercise()
	series := make([]Set, newExerciseSets)
	for i := range series {
		series[i] = Set{
			ID:     ident.Set(id, i),
			RepMin: DefaultRepMin,
			RepMax: DefaultRepMax,
			Extra:  DefaultExtra,
		}
	}
	return Exercise{ID: id, Extra: DefaultExtra, Series: series}
}

func exerciseIndex(list []Exercise, id string) int {
	for i, e := range list {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func serieIndex(list []Set, id string) int {
	for i, s := range list {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// withExercise clones r and applies fn to the addressed exercise;
// returns r unchanged when the address misses.
func withExercise(r Routine, dayKey, exerciseID string, fn func(*Exercise)) Routine {
	di := r.DayIndex(dayKey)
	if di < 0 {
		return r
	}
	ei := exerciseIndex(r[di].Exercises, exerciseID)
	if ei < 0 {
		return r
	}
	out := r.Clone()
	fn(&out[di].Exercises[ei])
	return out
}

// withSerie clones r and applies fn to the addressed set; returns r
// unchanged when the address misses.
func withSerie(r Routine, dayKey, exerciseID, serieID string, fn func(*Set)) Routine {
	di := r.DayIndex(dayKey)
	if di < 0 {
		return r
	}
	ei := exerciseIndex(r[di].Exercises, exerciseID)
	if ei < 0 {
		return r
	}
	si := serieIndex(r[di].Exercises[ei].Series, serieID)
	if si < 0 {
		return r
	}
	out := r.Clone()
	fn(&out[di].Exercises[ei].Series[si])
	return out
}
