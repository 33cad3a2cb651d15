package syncer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/meltforce/repbook/internal/store"
)

// Stats tracks push progress.
type Stats struct {
	RoutinesPushed  int
	RoutinesSkipped int
	ProgressPushed  bool
	LogPushed       bool
	Errors          int
}

// Syncer pushes the local store's routines, progress, and log to the
// backend.
type Syncer struct {
	store  *store.Store
	client *Client
	state  *PushState
	log    *slog.Logger
	stats  Stats
}

// New creates a Syncer.
func New(st *store.Store, client *Client, state *PushState, log *slog.Logger) *Syncer {
	return &Syncer{
		store:  st,
		client: client,
		state:  state,
		log:    log,
	}
}

// Run executes one push pass: every cataloged routine, then the shared
// progress map, then the training log. Per-routine failures are counted
// and skipped so one bad document does not block the rest.
func (s *Syncer) Run(ctx context.Context) (*Stats, error) {
	list, err := s.store.ListRoutines(ctx)
	if err != nil {
		return &s.stats, fmt.Errorf("listing routines: %w", err)
	}

	for _, meta := range list {
		if err := s.pushRoutine(ctx, meta); err != nil {
			s.log.Warn("routine push failed", "id", meta.ID, "error", err)
			s.stats.Errors++
		}
	}

	if err := s.pushProgress(ctx); err != nil {
		s.log.Warn("progress push failed", "error", err)
		s.stats.Errors++
	}

	if err := s.pushLog(ctx); err != nil {
		s.log.Warn("log push failed", "error", err)
		s.stats.Errors++
	}

	return &s.stats, nil
}

func (s *Syncer) pushRoutine(ctx context.Context, meta store.RoutineMeta) error {
	r, err := s.store.LoadRoutine(ctx, meta.ID)
	if err != nil {
		return err
	}
	doc, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding routine %s: %w", meta.ID, err)
	}

	key := "routine_" + meta.ID
	hash := HashPayload(doc)
	pushed, err := s.state.IsPushed(key, hash)
	if err != nil {
		return err
	}
	if pushed {
		s.stats.RoutinesSkipped++
		return nil
	}

	if err := s.client.PutRoutine(meta.ID, meta.Nombre, doc); err != nil {
		return err
	}
	if err := s.state.MarkPushed(key, hash); err != nil {
		s.log.Warn("failed to mark pushed", "key", key, "error", err)
	}

	s.stats.RoutinesPushed++
	s.log.Info("pushed routine", "id", meta.ID, "nombre", meta.Nombre)
	return nil
}

func (s *Syncer) pushProgress(ctx context.Context) error {
	p, err := s.store.LoadProgress(ctx)
	if err != nil {
		return err
	}
	if p.Len() == 0 {
		return nil
	}

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding progress: %w", err)
	}

	hash := HashPayload(data)
	pushed, err := s.state.IsPushed("progress", hash)
	if err != nil {
		return err
	}
	if pushed {
		return nil
	}

	if err := s.client.PostProgress(data); err != nil {
		return err
	}
	if err := s.state.MarkPushed("progress", hash); err != nil {
		s.log.Warn("failed to mark pushed", "key", "progress", "error", err)
	}

	s.stats.ProgressPushed = true
	s.log.Info("pushed progress", "entries", p.Len())
	return nil
}

func (s *Syncer) pushLog(ctx context.Context) error {
	entries, err := s.store.LoadLog(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encoding log: %w", err)
	}

	hash := HashPayload(data)
	pushed, err := s.state.IsPushed("log", hash)
	if err != nil {
		return err
	}
	if pushed {
		return nil
	}

	if err := s.client.PostLog(data); err != nil {
		return err
	}
	if err := s.state.MarkPushed("log", hash); err != nil {
		s.log.Warn("failed to mark pushed", "key", "log", "error", err)
	}

	s.stats.LogPushed = true
	s.log.Info("pushed log", "entries", len(entries))
	return nil
}
