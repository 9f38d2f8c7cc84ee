package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSlotStore implements the KeyValueStore interface on a single table
type PostgresSlotStore struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewSlotStore creates a new slot store. The store owns the pool and closes it on Close.
func NewSlotStore(config *RepositoryConfig) *PostgresSlotStore {
	return &PostgresSlotStore{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// EnsureSchema creates the slot table if it does not exist yet
func (r *PostgresSlotStore) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			key        TEXT PRIMARY KEY,
			value      BYTEA NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`, r.tables.Slots)

	if _, err := r.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("create slot table: %w", err)
	}

	r.logger.Debug("slot table ready", "table", r.tables.Slots)
	return nil
}

// Get reads the value stored under key
func (r *PostgresSlotStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query := fmt.Sprintf(`SELECT value FROM %s WHERE key = $1`, r.tables.Slots)

	var value []byte
	err := r.pool.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if IsPgNoRowsError(err) || IsPgUndefinedTableError(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get slot %s: %w", key, err)
	}

	return value, true, nil
}

// Set upserts the value stored under key
func (r *PostgresSlotStore) Set(ctx context.Context, key string, value []byte) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`, r.tables.Slots)

	if _, err := r.pool.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("set slot %s: %w", key, err)
	}

	return nil
}

// Close releases the connection pool
func (r *PostgresSlotStore) Close() error {
	r.pool.Close()
	return nil
}
