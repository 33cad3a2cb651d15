package training

import (
	"strconv"

	"github.com/meltforce/repbook/internal/routine"
)

// Zone classifies reported reps against a set's prescribed range. It
// drives the input background color in the session view.
type Zone int

const (
	// ZoneNeutral: no rule applies — failure-sentinel prescription,
	// unparseable bounds, or nothing entered yet.
	ZoneNeutral Zone = iota
	ZoneBelow
	ZoneInRange
	ZoneAbove
)

func (z Zone) String() string {
	switch z {
	case ZoneBelow:
		return "below"
	case ZoneInRange:
		return "in_range"
	case ZoneAbove:
		return "above"
	}
	return "neutral"
}

// Classify applies the range rule: reported reps strictly under repMin
// is Below, strictly over repMax is Above, otherwise InRange. Both
// boundaries are inclusive. A fallo prescription disables the rule.
func Classify(set routine.Set, reps string) Zone {
	if set.IsFallo() {
		return ZoneNeutral
	}
	min, okMin := parseNum(set.RepMin)
	max, okMax := parseNum(set.RepMax)
	r, okReps := parseNum(reps)
	if !okMin || !okMax || !okReps {
		return ZoneNeutral
	}
	switch {
	case r < min:
		return ZoneBelow
	case r > max:
		return ZoneAbove
	default:
		return ZoneInRange
	}
}

// Direction is the week-over-week movement of a recorded value.
type Direction int

const (
	TrendNone Direction = iota
	TrendUp
	TrendDown
	TrendFlat
)

func (d Direction) String() string {
	switch d {
	case TrendUp:
		return "up"
	case TrendDown:
		return "down"
	case TrendFlat:
		return "flat"
	}
	return "none"
}

// Compare derives the trend between the current entry and the previous
// week's value. Either side missing or non-numeric yields TrendNone.
func Compare(curr, prev string) Direction {
	c, okC := parseNum(curr)
	p, okP := parseNum(prev)
	if !okC || !okP {
		return TrendNone
	}
	switch {
	case c > p:
		return TrendUp
	case c < p:
		return TrendDown
	default:
		return TrendFlat
	}
}

// PrevValue scans strictly prior weeks for the most recent recorded
// value in the same (day, exercise, set) slot. Gaps are skipped; week 0
// stops the scan. Used for placeholders and trend icons only — it never
// writes.
func PrevValue(p *Progress, k SetKey, f Field) (string, bool) {
	for w := k.Week - 1; w > 0; w-- {
		prior := k
		prior.Week = w
		if v := p.Record(prior).Get(f); v != "" {
			return v, true
		}
	}
	return "", false
}

// PrevExceeded reports whether the previous recorded reps for the slot
// already beat the prescribed maximum — the "time to raise the weight"
// flag. Always false for fallo prescriptions.
func PrevExceeded(p *Progress, k SetKey, set routine.Set) bool {
	if set.IsFallo() {
		return false
	}
	max, okMax := parseNum(set.RepMax)
	if !okMax {
		return false
	}
	prev, ok := PrevValue(p, k, FieldReps)
	if !ok {
		return false
	}
	pv, okPrev := parseNum(prev)
	return okPrev && pv > max
}

func parseNum(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
