//go:build sqlite

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists RunRecords in a single-file SQLite database,
// collapsed to one table since RunRecord is the only persisted entity
// here.
type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func newSQLiteStore(path string) (Store, error) {
	return &SQLiteStore{path: path}, nil
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("storage: sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}
	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) SaveRun(ctx context.Context, run RunRecord) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}
	payload, err := EncodeRun(run)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO runs (id, experiment, payload)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			experiment = excluded.experiment,
			payload = excluded.payload
	`, run.RunID, run.Experiment, payload)
	return err
}

func (s *SQLiteStore) GetRun(ctx context.Context, runID string) (RunRecord, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return RunRecord{}, false, err
	}
	var payload []byte
	err = db.QueryRowContext(ctx, `SELECT payload FROM runs WHERE id = ?`, runID).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RunRecord{}, false, nil
		}
		return RunRecord{}, false, err
	}
	run, err := DecodeRun(payload)
	if err != nil {
		return RunRecord{}, false, fmt.Errorf("storage: decode run %s: %w", runID, err)
	}
	return run, true, nil
}

func (s *SQLiteStore) ListRuns(ctx context.Context, experiment string) ([]string, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}
	var rows *sql.Rows
	if experiment == "" {
		rows, err = db.QueryContext(ctx, `SELECT id FROM runs`)
	} else {
		rows, err = db.QueryContext(ctx, `SELECT id FROM runs WHERE experiment = ?`, experiment)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, errors.New("storage: store is not initialized")
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			experiment TEXT NOT NULL,
			payload BLOB NOT NULL
		);
	`)
	return err
}
