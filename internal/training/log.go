package training

import (
	"fmt"
	"time"

	"github.com/meltforce/repbook/internal/routine"
)

// LogEntry is one set's outcome archived to the global training log when
// its exercise is marked completed. Volume and e1RM are derived at write
// time so the log is self-contained.
type LogEntry struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	RoutineName string    `json:"routineName"`
	Week        int       `json:"week"`
	Muscle      string    `json:"muscle"`
	Exercise    string    `json:"exercise"`
	SetIndex    int       `json:"setIndex"` // 1-based, as displayed
	Reps        float64   `json:"reps"`
	Load        float64   `json:"load"`
	Volume      float64   `json:"volume"`
	E1RM        float64   `json:"e1RM"`
}

// E1RM estimates a one-rep max with the Epley formula. Zero reps means
// nothing was lifted for a max estimate, so zero comes back.
func E1RM(load, reps float64) float64 {
	if reps <= 0 {
		return 0
	}
	return load * (1 + reps/30)
}

// CompletionEntries builds the log entries for marking an exercise
// completed: one per prescribed set, with whatever was recorded for the
// slot (unrecorded sets log zeros — the prescription was still part of
// the session).
func CompletionEntries(routineName string, k Key, ex routine.Exercise, p *Progress, now time.Time) []LogEntry {
	entries := make([]LogEntry, 0, len(ex.Series))
	stamp := now.Format(time.RFC3339)
	for i := range ex.Series {
		rec := p.Record(k.Set(i))
		reps, _ := parseNum(rec.Reps)
		load, _ := parseNum(rec.Peso)
		entries = append(entries, LogEntry{
			ID:          fmt.Sprintf("%s-%s-%d", stamp, ex.ID, i),
			Date:        now,
			RoutineName: routineName,
			Week:        k.Week,
			Muscle:      ex.Musculo,
			Exercise:    ex.Nombre,
			SetIndex:    i + 1,
			Reps:        reps,
			Load:        load,
			Volume:      reps * load,
			E1RM:        E1RM(load, reps),
		})
	}
	return entries
}

// Session is the pointer to the last viewed week and day, restored when
// the training screen reopens. JSON field names match the legacy record.
type Session struct {
	Week int `json:"lastSemana"`
	Day  int `json:"lastDiaIdx"`
}

// WeeksMax caps the selectable training week.
const WeeksMax = 12
