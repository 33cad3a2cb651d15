package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/meltforce/repbook/internal/training"
)

// UpsertProgress batch-upserts the statuses and set records of a
// progress snapshot. Returns how many rows were written.
func (db *DB) UpsertProgress(ctx context.Context, p *training.Progress) (int64, error) {
	var total int64

	if len(p.Statuses) > 0 {
		query := `INSERT INTO progress_statuses (week, day, exercise_id, status) VALUES `
		args := make([]any, 0, len(p.Statuses)*4)
		valueStrings := make([]string, 0, len(p.Statuses))

		i := 0
		for k, s := range p.Statuses {
			base := i * 4
			valueStrings = append(valueStrings, fmt.Sprintf(
				"($%d,$%d,$%d,$%d)", base+1, base+2, base+3, base+4))
			args = append(args, k.Week, k.Day, k.Exercise, string(s.Canonical()))
			i++
		}

		query += strings.Join(valueStrings, ",") +
			" ON CONFLICT (week, day, exercise_id) DO UPDATE SET status = EXCLUDED.status"

		tag, err := db.Pool.Exec(ctx, query, args...)
		if err != nil {
			return 0, fmt.Errorf("upserting statuses: %w", err)
		}
		total += tag.RowsAffected()
	}

	if len(p.Sets) > 0 {
		query := `INSERT INTO progress_sets (week, day, exercise_id, set_index, reps, peso) VALUES `
		args := make([]any, 0, len(p.Sets)*6)
		valueStrings := make([]string, 0, len(p.Sets))

		i := 0
		for k, rec := range p.Sets {
			base := i * 6
			valueStrings = append(valueStrings, fmt.Sprintf(
				"($%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6))
			args = append(args, k.Week, k.Day, k.Exercise, k.Index, rec.Reps, rec.Peso)
			i++
		}

		query += strings.Join(valueStrings, ",") +
			` ON CONFLICT (week, day, exercise_id, set_index) DO UPDATE SET
			   reps = EXCLUDED.reps, peso = EXCLUDED.peso`

		tag, err := db.Pool.Exec(ctx, query, args...)
		if err != nil {
			return 0, fmt.Errorf("upserting set records: %w", err)
		}
		total += tag.RowsAffected()
	}

	return total, nil
}

// QueryWeek returns all progress for one training week.
func (db *DB) QueryWeek(ctx context.Context, week int) (*training.Progress, error) {
	p := training.NewProgress()

	rows, err := db.Pool.Query(ctx,
		`SELECT week, day, exercise_id, status FROM progress_statuses WHERE week = $1`, week)
	if err != nil {
		return nil, fmt.Errorf("querying statuses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var k training.Key
		var status string
		if err := rows.Scan(&k.Week, &k.Day, &k.Exercise, &status); err != nil {
			return nil, fmt.Errorf("scanning status: %w", err)
		}
		p.SetStatus(k, training.Status(status))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	setRows, err := db.Pool.Query(ctx,
		`SELECT week, day, exercise_id, set_index, reps, peso FROM progress_sets WHERE week = $1`, week)
	if err != nil {
		return nil, fmt.Errorf("querying set records: %w", err)
	}
	defer setRows.Close()

	for setRows.Next() {
		var k training.SetKey
		var reps, peso string
		if err := setRows.Scan(&k.Week, &k.Day, &k.Exercise, &k.Index, &reps, &peso); err != nil {
			return nil, fmt.Errorf("scanning set record: %w", err)
		}
		if reps != "" {
			p.SetField(k, training.FieldReps, reps)
		}
		if peso != "" {
			p.SetField(k, training.FieldPeso, peso)
		}
	}
	return p, setRows.Err()
}

// SlotHistoryRow is one recorded set from a prior week.
type SlotHistoryRow struct {
	Week int    `json:"week"`
	Reps string `json:"reps"`
	Peso string `json:"peso"`
}

// QuerySlotHistory returns recorded values for one set slot in weeks
// strictly before the given week, most recent first. Trend lookups scan
// this list for the first non-empty value.
func (db *DB) QuerySlotHistory(ctx context.Context, week int, k training.SetKey) ([]SlotHistoryRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT week, reps, peso FROM progress_sets
		 WHERE week < $1 AND day = $2 AND exercise_id = $3 AND set_index = $4
		 ORDER BY week DESC`,
		week, k.Day, k.Exercise, k.Index)
	if err != nil {
		return nil, fmt.Errorf("querying slot history: %w", err)
	}
	defer rows.Close()

	var result []SlotHistoryRow
	for rows.Next() {
		var r SlotHistoryRow
		if err := rows.Scan(&r.Week, &r.Reps, &r.Peso); err != nil {
			return nil, fmt.Errorf("scanning slot history: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
