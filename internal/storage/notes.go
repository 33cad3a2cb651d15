package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/meltforce/repbook/internal/training"
)

// UpsertNotes batch-upserts set-level notes for one routine.
func (db *DB) UpsertNotes(ctx context.Context, routineID string, notes training.Notes) (int64, error) {
	if len(notes) == 0 {
		return 0, nil
	}

	query := `INSERT INTO set_notes (routine_id, week, day, exercise_id, set_index, value, text) VALUES `
	args := make([]any, 0, len(notes)*7)
	valueStrings := make([]string, 0, len(notes))

	i := 0
	for k, n := range notes {
		base := i * 7
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7))
		args = append(args, routineID, k.Week, k.Day, k.Exercise, k.Index, string(n.Value), n.Text)
		i++
	}

	query += strings.Join(valueStrings, ",") +
		` ON CONFLICT (routine_id, week, day, exercise_id, set_index) DO UPDATE SET
		   value = EXCLUDED.value, text = EXCLUDED.text`

	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("upserting notes: %w", err)
	}
	return tag.RowsAffected(), nil
}

// QueryNotes returns all notes for one routine.
func (db *DB) QueryNotes(ctx context.Context, routineID string) (training.Notes, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT week, day, exercise_id, set_index, value, text
		 FROM set_notes WHERE routine_id = $1`, routineID)
	if err != nil {
		return nil, fmt.Errorf("querying notes: %w", err)
	}
	defer rows.Close()

	notes := training.Notes{}
	for rows.Next() {
		var k training.SetKey
		var value, text string
		if err := rows.Scan(&k.Week, &k.Day, &k.Exercise, &k.Index, &value, &text); err != nil {
			return nil, fmt.Errorf("scanning note: %w", err)
		}
		notes[k] = training.Note{Value: training.NoteValue(value), Text: text}
	}
	return notes, rows.Err()
}
