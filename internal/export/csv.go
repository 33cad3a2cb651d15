// Package export renders one training week's recorded sets as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/meltforce/repbook/internal/routine"
	"github.com/meltforce/repbook/internal/training"
)

// setRows is how many set rows are emitted per exercise. Fixed rather
// than derived from the prescription so the sheet keeps a uniform grid.
const setRows = 5

// WeekCSV writes the recorded reps and loads of one week to w. Each
// exercise gets a header row followed by one row per set slot; days are
// separated by a blank row.
func WeekCSV(w io.Writer, r routine.Routine, p *training.Progress, week int) error {
	cw := csv.NewWriter(w)

	for dayIdx, day := range r {
		for _, ex := range day.Exercises {
			header := []string{fmt.Sprintf("%s - %s", ex.Musculo, ex.Nombre), "REPS", "CARGA"}
			if err := cw.Write(header); err != nil {
				return fmt.Errorf("writing exercise header: %w", err)
			}

			slot := training.Key{Week: week, Day: dayIdx, Exercise: ex.ID}
			for i := 0; i < setRows; i++ {
				rec := p.Record(slot.Set(i))
				if err := cw.Write([]string{"", rec.Reps, rec.Peso}); err != nil {
					return fmt.Errorf("writing set row: %w", err)
				}
			}
		}

		if dayIdx < len(r)-1 {
			if err := cw.Write([]string{""}); err != nil {
				return fmt.Errorf("writing day separator: %w", err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// WeekFilename returns the conventional export filename for a week.
func WeekFilename(week int) string {
	return fmt.Sprintf("semana-%d.csv", week)
}
