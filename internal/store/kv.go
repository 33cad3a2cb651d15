// Package store persists routines, training progress, notes, and the
// training log in a local key/value database. The layout mirrors the
// mobile client's storage: one key per routine document plus a handful
// of well-known keys for shared state.
package store

import "context"

// Well-known keys.
const (
	KeyCatalog     = "rutinas"
	KeyActive      = "active_routine"
	KeyActiveName  = "active_routine_name"
	KeyProgress    = "progress"
	KeyLastSession = "last_session"
	KeyGlobalLog   = "GLOBAL_LOG"

	routineKeyPrefix = "routine_"
)

// RoutineKey returns the storage key for a routine document.
func RoutineKey(id string) string {
	return routineKeyPrefix + id
}

// KV is a simple string key/value store. Get returns ok=false for a
// missing key rather than an error.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	MultiGet(ctx context.Context, keys []string) (map[string]string, error)
	MultiSet(ctx context.Context, pairs map[string]string) error
	Delete(ctx context.Context, key string) error
	Close() error
}
