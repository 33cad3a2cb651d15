package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/meltforce/repbook/internal/ident"
	"github.com/meltforce/repbook/internal/routine"
	"github.com/meltforce/repbook/internal/training"
)

// RoutineMeta is a catalog entry under the "rutinas" key.
type RoutineMeta struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
	Dias   int    `json:"dias"`
	Fecha  string `json:"fecha"`
}

// Store provides typed access to the key/value layout on top of a KV.
type Store struct {
	kv  KV
	now func() time.Time
}

// New wraps kv in a typed store.
func New(kv KV) *Store {
	return &Store{kv: kv, now: time.Now}
}

// Close closes the underlying KV.
func (s *Store) Close() error {
	return s.kv.Close()
}

// LoadRoutine reads and normalizes a routine document. A missing or
// malformed document yields a minimal one-day routine. When
// normalization changed the document, the repaired form is written
// back so the repair sticks.
func (s *Store) LoadRoutine(ctx context.Context, id string) (routine.Routine, error) {
	raw, ok, err := s.kv.Get(ctx, RoutineKey(id))
	if err != nil {
		return nil, fmt.Errorf("loading routine %s: %w", id, err)
	}

	r := routine.ParseAndNormalize([]byte(raw))
	if !ok {
		if err := s.SaveRoutine(ctx, id, r); err != nil {
			return nil, err
		}
		return r, nil
	}

	repaired, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encoding routine %s: %w", id, err)
	}
	if string(repaired) != raw {
		if err := s.kv.Set(ctx, RoutineKey(id), string(repaired)); err != nil {
			return nil, fmt.Errorf("writing back repaired routine %s: %w", id, err)
		}
	}
	return r, nil
}

// SaveRoutine normalizes and persists a routine document.
func (s *Store) SaveRoutine(ctx context.Context, id string, r routine.Routine) error {
	data, err := json.Marshal(routine.Normalize(r))
	if err != nil {
		return fmt.Errorf("encoding routine %s: %w", id, err)
	}
	if err := s.kv.Set(ctx, RoutineKey(id), string(data)); err != nil {
		return fmt.Errorf("saving routine %s: %w", id, err)
	}
	return nil
}

// ListRoutines returns the catalog. Entries without an ID are dropped.
func (s *Store) ListRoutines(ctx context.Context) ([]RoutineMeta, error) {
	raw, ok, err := s.kv.Get(ctx, KeyCatalog)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var list []RoutineMeta
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}

	out := list[:0]
	for _, m := range list {
		if m.ID != "" {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *Store) saveCatalog(ctx context.Context, list []RoutineMeta) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	if err := s.kv.Set(ctx, KeyCatalog, string(data)); err != nil {
		return fmt.Errorf("saving catalog: %w", err)
	}
	return nil
}

// CreateRoutine mints a new routine with the given number of empty
// days, adds it to the catalog, and persists its document.
func (s *Store) CreateRoutine(ctx context.Context, nombre string, dias int) (RoutineMeta, error) {
	if dias < 1 {
		dias = 1
	}

	meta := RoutineMeta{
		ID:     ident.New(),
		Nombre: nombre,
		Dias:   dias,
		Fecha:  s.now().Format("02/01/2006"),
	}

	r := make(routine.Routine, dias)
	if err := s.SaveRoutine(ctx, meta.ID, r); err != nil {
		return RoutineMeta{}, err
	}

	list, err := s.ListRoutines(ctx)
	if err != nil {
		return RoutineMeta{}, err
	}
	if err := s.saveCatalog(ctx, append(list, meta)); err != nil {
		return RoutineMeta{}, err
	}
	return meta, nil
}

// DeleteRoutine removes the routine from the catalog and deletes its
// document. If it was the active routine the active markers are
// cleared. Training progress, notes, and the log are kept.
func (s *Store) DeleteRoutine(ctx context.Context, id string) error {
	list, err := s.ListRoutines(ctx)
	if err != nil {
		return err
	}

	kept := list[:0]
	for _, m := range list {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	if err := s.saveCatalog(ctx, kept); err != nil {
		return err
	}
	if err := s.kv.Delete(ctx, RoutineKey(id)); err != nil {
		return fmt.Errorf("deleting routine %s: %w", id, err)
	}

	activeID, _, err := s.ActiveRoutine(ctx)
	if err != nil {
		return err
	}
	if activeID == id {
		return s.ClearActiveRoutine(ctx)
	}
	return nil
}

// SetActiveRoutine marks the routine used by the training screen.
func (s *Store) SetActiveRoutine(ctx context.Context, m RoutineMeta) error {
	name := m.Nombre
	if name == "" {
		name = "Rutina"
	}
	err := s.kv.MultiSet(ctx, map[string]string{
		KeyActive:     m.ID,
		KeyActiveName: name,
	})
	if err != nil {
		return fmt.Errorf("setting active routine: %w", err)
	}
	return nil
}

// ActiveRoutine returns the active routine's id and display name. Both
// are empty when no routine is active.
func (s *Store) ActiveRoutine(ctx context.Context) (id, name string, err error) {
	vals, err := s.kv.MultiGet(ctx, []string{KeyActive, KeyActiveName})
	if err != nil {
		return "", "", fmt.Errorf("loading active routine: %w", err)
	}
	return vals[KeyActive], vals[KeyActiveName], nil
}

// ClearActiveRoutine removes the active routine markers.
func (s *Store) ClearActiveRoutine(ctx context.Context) error {
	if err := s.kv.Delete(ctx, KeyActive); err != nil {
		return fmt.Errorf("clearing active routine: %w", err)
	}
	if err := s.kv.Delete(ctx, KeyActiveName); err != nil {
		return fmt.Errorf("clearing active routine name: %w", err)
	}
	return nil
}

// LoadProgress reads the shared progress map. Missing or malformed
// data yields an empty map.
func (s *Store) LoadProgress(ctx context.Context) (*training.Progress, error) {
	raw, ok, err := s.kv.Get(ctx, KeyProgress)
	if err != nil {
		return nil, fmt.Errorf("loading progress: %w", err)
	}

	p := training.NewProgress()
	if !ok {
		return p, nil
	}
	if err := json.Unmarshal([]byte(raw), p); err != nil {
		return training.NewProgress(), nil
	}
	return p, nil
}

// SaveProgress persists the shared progress map.
func (s *Store) SaveProgress(ctx context.Context, p *training.Progress) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding progress: %w", err)
	}
	if err := s.kv.Set(ctx, KeyProgress, string(data)); err != nil {
		return fmt.Errorf("saving progress: %w", err)
	}
	return nil
}

// LoadNotes reads set notes keyed by "notes_<routineID>".
func (s *Store) LoadNotes(ctx context.Context, routineID string) (training.Notes, error) {
	raw, ok, err := s.kv.Get(ctx, "notes_"+routineID)
	if err != nil {
		return nil, fmt.Errorf("loading notes: %w", err)
	}

	n := training.Notes{}
	if !ok {
		return n, nil
	}
	if err := json.Unmarshal([]byte(raw), &n); err != nil {
		return training.Notes{}, nil
	}
	return n, nil
}

// SaveNotes persists set notes for a routine.
func (s *Store) SaveNotes(ctx context.Context, routineID string, n training.Notes) error {
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encoding notes: %w", err)
	}
	if err := s.kv.Set(ctx, "notes_"+routineID, string(data)); err != nil {
		return fmt.Errorf("saving notes: %w", err)
	}
	return nil
}

// LoadSession returns the last training position, or nil when none was
// recorded.
func (s *Store) LoadSession(ctx context.Context) (*training.Session, error) {
	raw, ok, err := s.kv.Get(ctx, KeyLastSession)
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var sess training.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, nil
	}
	return &sess, nil
}

// SaveSession records the last training position.
func (s *Store) SaveSession(ctx context.Context, sess training.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := s.kv.Set(ctx, KeyLastSession, string(data)); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// AppendLog appends entries to the global training log. The log only
// grows; deleting a routine never touches it.
func (s *Store) AppendLog(ctx context.Context, entries []training.LogEntry) error {
	if len(entries) == 0 {
		return nil
	}

	log, err := s.LoadLog(ctx)
	if err != nil {
		return err
	}

	data, err := json.Marshal(append(log, entries...))
	if err != nil {
		return fmt.Errorf("encoding log: %w", err)
	}
	if err := s.kv.Set(ctx, KeyGlobalLog, string(data)); err != nil {
		return fmt.Errorf("saving log: %w", err)
	}
	return nil
}

// LoadLog returns the global training log, oldest first.
func (s *Store) LoadLog(ctx context.Context) ([]training.LogEntry, error) {
	raw, ok, err := s.kv.Get(ctx, KeyGlobalLog)
	if err != nil {
		return nil, fmt.Errorf("loading log: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var log []training.LogEntry
	if err := json.Unmarshal([]byte(raw), &log); err != nil {
		return nil, nil
	}
	return log, nil
}
