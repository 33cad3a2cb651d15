package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/meltforce/repbook/internal/training"
)

// InsertLogEntries batch-inserts training log entries. Entries already
// present (by ID) are skipped. Returns count inserted.
func (db *DB) InsertLogEntries(ctx context.Context, entries []training.LogEntry) (int64, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	query := `INSERT INTO training_log (id, logged_at, routine_name, week, muscle,
		exercise, set_index, reps, load, volume, e1rm) VALUES `
	args := make([]any, 0, len(entries)*11)
	valueStrings := make([]string, 0, len(entries))

	for i, e := range entries {
		base := i * 11
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6,
			base+7, base+8, base+9, base+10, base+11))
		args = append(args, e.ID, e.Date, e.RoutineName, e.Week, e.Muscle,
			e.Exercise, e.SetIndex, e.Reps, e.Load, e.Volume, e.E1RM)
	}

	query += strings.Join(valueStrings, ",") + " ON CONFLICT DO NOTHING"

	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("inserting log entries: %w", err)
	}
	return tag.RowsAffected(), nil
}

// QueryLog returns log entries for one training week, oldest first.
func (db *DB) QueryLog(ctx context.Context, week int) ([]training.LogEntry, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, logged_at, routine_name, week, muscle, exercise,
		 set_index, reps, load, volume, e1rm
		 FROM training_log WHERE week = $1
		 ORDER BY logged_at ASC, exercise ASC, set_index ASC`, week)
	if err != nil {
		return nil, fmt.Errorf("querying log: %w", err)
	}
	defer rows.Close()

	var result []training.LogEntry
	for rows.Next() {
		var e training.LogEntry
		if err := rows.Scan(&e.ID, &e.Date, &e.RoutineName, &e.Week, &e.Muscle,
			&e.Exercise, &e.SetIndex, &e.Reps, &e.Load, &e.Volume, &e.E1RM); err != nil {
			return nil, fmt.Errorf("scanning log entry: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// WeeklyVolumeRow aggregates logged volume per muscle for one week.
type WeeklyVolumeRow struct {
	Week   int     `json:"week"`
	Muscle string  `json:"muscle"`
	Volume float64 `json:"volume"`
	Sets   int64   `json:"sets"`
}

// WeeklyVolume returns total logged volume grouped by week and muscle,
// most recent weeks first.
func (db *DB) WeeklyVolume(ctx context.Context) ([]WeeklyVolumeRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT week, muscle, COALESCE(SUM(volume), 0), COUNT(*)
		 FROM training_log
		 GROUP BY week, muscle
		 ORDER BY week DESC, muscle ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying weekly volume: %w", err)
	}
	defer rows.Close()

	var result []WeeklyVolumeRow
	for rows.Next() {
		var r WeeklyVolumeRow
		if err := rows.Scan(&r.Week, &r.Muscle, &r.Volume, &r.Sets); err != nil {
			return nil, fmt.Errorf("scanning weekly volume: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
