package mcp

import (
	"context"

	"github.com/meltforce/repbook/internal/storage"
	"github.com/meltforce/repbook/internal/training"
)

// DataSource abstracts the data layer for MCP tools.
type DataSource interface {
	ListRoutines(ctx context.Context) ([]storage.RoutineRow, error)
	GetRoutine(ctx context.Context, id string) (*storage.RoutineRow, error)
	GetActiveRoutine(ctx context.Context) (id, nombre string, err error)
	QueryWeek(ctx context.Context, week int) (*training.Progress, error)
	QuerySlotHistory(ctx context.Context, week int, k training.SetKey) ([]storage.SlotHistoryRow, error)
	WeeklyVolume(ctx context.Context) ([]storage.WeeklyVolumeRow, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
