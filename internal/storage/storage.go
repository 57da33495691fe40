package storage

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	cfg "github.com/yunohabits/yuno/internal/config"
)

var (
	ErrKeyNotFound = errors.New("key not found")
)

const (
	BackendSQL    = "sql"
	BackendS3     = "s3"
	BackendMemory = "memory"
)

// Store is the key-value store that holds per-user blobs
// (identity, solo goals, XP total)
type Store interface {
	// Get returns ErrKeyNotFound when the key was never set
	Get(key string) ([]byte, error)

	Set(key string, value []byte) error

	Delete(key string) error
}

// New selects the backend configured by KV_BACKEND
func New(c *cfg.Config, db *sqlx.DB) (Store, error) {
	slog.Info("initializing key-value store", "backend", c.KVBackend)

	switch c.KVBackend {
	case BackendSQL, "":
		return NewSQLStore(db), nil
	case BackendS3:
		return NewS3Store(S3Config{
			Region:    c.S3Region,
			Bucket:    c.S3Bucket,
			AccessKey: c.S3AccessKey,
			SecretKey: c.S3SecretKey,
			Endpoint:  c.S3Endpoint,
			Timeout:   c.S3Timeout,
		})
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown KV_BACKEND %q", c.KVBackend)
	}
}
