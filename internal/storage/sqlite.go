//go:build sqlite

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"biodesigner/internal/model"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
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

func (s *SQLiteStore) SaveCodonTable(ctx context.Context, record model.CodonUsageRecord) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	payload, err := EncodeCodonTable(record)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO codon_tables (organism, schema_version, codec_version, payload)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(organism) DO UPDATE SET
			schema_version = excluded.schema_version,
			codec_version = excluded.codec_version,
			payload = excluded.payload
	`, record.Organism, record.SchemaVersion, record.CodecVersion, payload)
	return err
}

func (s *SQLiteStore) GetCodonTable(ctx context.Context, organism string) (model.CodonUsageRecord, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return model.CodonUsageRecord{}, false, err
	}

	var payload []byte
	err = db.QueryRowContext(ctx, `SELECT payload FROM codon_tables WHERE organism = ?`, organism).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.CodonUsageRecord{}, false, nil
		}
		return model.CodonUsageRecord{}, false, err
	}

	record, err := DecodeCodonTable(payload)
	if err != nil {
		return model.CodonUsageRecord{}, false, fmt.Errorf("decode codon table %s: %w", organism, err)
	}
	return record, true, nil
}

func (s *SQLiteStore) ListCodonTables(ctx context.Context) ([]string, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `SELECT organism FROM codon_tables ORDER BY organism`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	organisms := make([]string, 0)
	for rows.Next() {
		var organism string
		if err := rows.Scan(&organism); err != nil {
			return nil, err
		}
		organisms = append(organisms, organism)
	}
	return organisms, rows.Err()
}

func (s *SQLiteStore) DeleteCodonTable(ctx context.Context, organism string) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `DELETE FROM codon_tables WHERE organism = ?`, organism)
	return err
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
		return nil, errNotInitialized
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS codon_tables (
			organism TEXT PRIMARY KEY,
			schema_version INTEGER NOT NULL,
			codec_version INTEGER NOT NULL,
			payload BLOB NOT NULL
		);
	`)
	return err
}
