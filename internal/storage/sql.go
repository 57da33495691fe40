package storage

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

// SQLStore keeps blobs in the kv_entries table of the application database
type SQLStore struct {
	db *sqlx.DB
}

func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Get(key string) ([]byte, error) {
	var value []byte
	err := s.db.Get(&value, `SELECT value FROM kv_entries WHERE entry_key = $1`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (s *SQLStore) Set(key string, value []byte) error {
	query := `INSERT INTO kv_entries (entry_key, value, updated_at)
	          VALUES ($1, $2, $3)
	          ON CONFLICT (entry_key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	_, err := s.db.Exec(query, key, value, time.Now())
	return err
}

func (s *SQLStore) Delete(key string) error {
	_, err := s.db.Exec(`DELETE FROM kv_entries WHERE entry_key = $1`, key)
	return err
}
