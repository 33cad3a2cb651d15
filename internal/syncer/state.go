package syncer

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// PushState tracks which payloads have been successfully pushed so
// unchanged data is not re-sent.
type PushState struct {
	db *sql.DB
}

// OpenPushState opens (or creates) the sync state database at dir/sync.db.
func OpenPushState(dir string) (*PushState, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating sync state dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "sync.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sync state db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS pushed (
		key       TEXT PRIMARY KEY,
		hash      TEXT NOT NULL,
		pushed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating pushed table: %w", err)
	}

	return &PushState{db: db}, nil
}

// IsPushed checks whether this key was already pushed with this content.
func (s *PushState) IsPushed(key, hash string) (bool, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM pushed WHERE key = ? AND hash = ?`,
		key, hash,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// MarkPushed records a successful push.
func (s *PushState) MarkPushed(key, hash string) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO pushed (key, hash) VALUES (?, ?)`,
		key, hash,
	)
	return err
}

// Close closes the state database.
func (s *PushState) Close() error {
	return s.db.Close()
}

// HashPayload computes the SHA-256 hash of a payload.
func HashPayload(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
