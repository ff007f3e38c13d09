// internal/store/postgres.go
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vaibhavProductCode/loan-progress-hub/internal/common/config"

	_ "github.com/lib/pq"
)

// PostgresStore keeps snapshots in a single key-value table with a JSONB
// blob column, upserted on every save.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres creates a new PostgreSQL-backed store.
func NewPostgres(cfg config.PostgresConfig) (*PostgresStore, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &PostgresStore{db: db}, nil
}

// NewPostgresFromDB wraps an existing connection, used by tests with sqlmock.
func NewPostgresFromDB(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Ping tests the database connection.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// EnsureSchema creates the snapshots table when it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS snapshots (
			key        TEXT PRIMARY KEY,
			blob       JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("create snapshots table: %w", err)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context, key string) ([]byte, error) {
	var blob []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT blob FROM snapshots WHERE key = $1`, key).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select snapshot %s: %w", key, err)
	}
	return blob, nil
}

func (s *PostgresStore) Save(ctx context.Context, key string, blob []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO snapshots (key, blob, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET blob = $2, updated_at = now()`,
		key, blob)
	if err != nil {
		return fmt.Errorf("upsert snapshot %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM snapshots WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("delete snapshot %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
