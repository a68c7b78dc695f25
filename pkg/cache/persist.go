package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// PersistKey names the single row holding the client tier snapshot.
const PersistKey = "query-cache"

// Snapshot is the persisted form of the client tier.
type Snapshot struct {
	Buster    string       `json:"buster"`
	Timestamp time.Time    `json:"timestamp"`
	Entries   []QueryEntry `json:"entries"`
}

// Persister is the durable key/value tier.
type Persister interface {
	Save(ctx context.Context, key string, blob []byte) error
	// Load returns ErrNoSnapshot when nothing is stored under key.
	Load(ctx context.Context, key string) ([]byte, error)
}

var ErrNoSnapshot = errors.New("no persisted snapshot")

const schema = /* sql */ `
CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at DATETIME NOT NULL
)`

// SQLiteStore is a one-table key/value store.
type SQLiteStore struct {
	db *sqlx.DB
}

func OpenSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	// a single connection keeps ":memory:" databases alive and serializes writers
	db.SetMaxOpenConns(1)

	err = db.PingContext(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to reach cache database: %w", err)
	}

	_, err = db.ExecContext(ctx, schema)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("error while creating cache schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Save(ctx context.Context, key string, blob []byte) error {
	_, err := s.db.ExecContext(ctx,
		/* sql */ `
		INSERT INTO kv (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, blob, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("error while saving %q: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context, key string) ([]byte, error) {
	var blob []byte
	err := s.db.GetContext(ctx, &blob,
		/* sql */ `
		SELECT value
		FROM kv
		WHERE key = ?
	`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %w", ErrNoSnapshot, err)
	}
	if err != nil {
		return nil, fmt.Errorf("error while loading %q: %w", key, err)
	}
	return blob, nil
}

func encodeSnapshot(s Snapshot) ([]byte, error) {
	return json.Marshal(s)
}

// decodeSnapshot treats a blob that is too old or written under another
// buster as absent.
func decodeSnapshot(blob []byte, buster string, maxAge time.Duration, now time.Time) (Snapshot, bool) {
	var s Snapshot
	if err := json.Unmarshal(blob, &s); err != nil {
		return Snapshot{}, false
	}
	if s.Buster != buster {
		return Snapshot{}, false
	}
	if maxAge > 0 && now.Sub(s.Timestamp) > maxAge {
		return Snapshot{}, false
	}
	return s, true
}
