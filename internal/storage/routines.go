package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrNotFound is returned when a requested routine does not exist.
var ErrNotFound = errors.New("storage: not found")

// RoutineRow is one stored routine: catalog metadata plus the full
// document as received from the client.
type RoutineRow struct {
	ID        string          `json:"id"`
	Nombre    string          `json:"nombre"`
	Dias      int             `json:"dias"`
	Doc       json.RawMessage `json:"doc"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// UpsertRoutine stores a routine document. An empty ID mints a new
// server-side one. Returns the stored ID.
func (db *DB) UpsertRoutine(ctx context.Context, r RoutineRow) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}

	_, err := db.Pool.Exec(ctx,
		`INSERT INTO routines (id, nombre, dias, doc, updated_at)
		 VALUES ($1, $2, $3, $4, now())
		 ON CONFLICT (id) DO UPDATE SET
		   nombre = EXCLUDED.nombre,
		   dias = EXCLUDED.dias,
		   doc = EXCLUDED.doc,
		   updated_at = now()`,
		r.ID, r.Nombre, r.Dias, r.Doc)
	if err != nil {
		return "", fmt.Errorf("upserting routine %s: %w", r.ID, err)
	}
	return r.ID, nil
}

// GetRoutine returns one routine by ID.
func (db *DB) GetRoutine(ctx context.Context, id string) (*RoutineRow, error) {
	var r RoutineRow
	err := db.Pool.QueryRow(ctx,
		`SELECT id, nombre, dias, doc, updated_at FROM routines WHERE id = $1`, id,
	).Scan(&r.ID, &r.Nombre, &r.Dias, &r.Doc, &r.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying routine %s: %w", id, err)
	}
	return &r, nil
}

// ListRoutines returns catalog metadata for all routines, newest first.
// Documents are omitted to keep the listing light.
func (db *DB) ListRoutines(ctx context.Context) ([]RoutineRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, nombre, dias, updated_at FROM routines ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing routines: %w", err)
	}
	defer rows.Close()

	var result []RoutineRow
	for rows.Next() {
		var r RoutineRow
		if err := rows.Scan(&r.ID, &r.Nombre, &r.Dias, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning routine: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// DeleteRoutine removes a routine. Progress, notes, and log rows are
// kept so training history survives routine deletion.
func (db *DB) DeleteRoutine(ctx context.Context, id string) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM routines WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting routine %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	_, err = db.Pool.Exec(ctx, `DELETE FROM active_routine WHERE routine_id = $1`, id)
	if err != nil {
		return fmt.Errorf("clearing active marker for %s: %w", id, err)
	}
	return nil
}

// SetActiveRoutine marks one routine as the training target. The table
// holds at most one row.
func (db *DB) SetActiveRoutine(ctx context.Context, id, nombre string) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO active_routine (singleton, routine_id, nombre)
		 VALUES (true, $1, $2)
		 ON CONFLICT (singleton) DO UPDATE SET
		   routine_id = EXCLUDED.routine_id,
		   nombre = EXCLUDED.nombre`,
		id, nombre)
	if err != nil {
		return fmt.Errorf("setting active routine: %w", err)
	}
	return nil
}

// GetActiveRoutine returns the active routine's id and name, or
// ErrNotFound if none is set.
func (db *DB) GetActiveRoutine(ctx context.Context) (id, nombre string, err error) {
	err = db.Pool.QueryRow(ctx,
		`SELECT routine_id, nombre FROM active_routine WHERE singleton`,
	).Scan(&id, &nombre)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", "", ErrNotFound
	}
	if err != nil {
		return "", "", fmt.Errorf("querying active routine: %w", err)
	}
	return id, nombre, nil
}
