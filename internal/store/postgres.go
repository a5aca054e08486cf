package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/ratewindow/internal/ratelimit"
)

// PostgresStore is a PostgreSQL implementation of ratelimit.Store for
// deployments that already run Postgres and don't want a second backend.
// Unlike Redis there is no native TTL, so every row carries its expiry
// and reads filter expired rows; PurgeExpired reclaims them.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed record store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// CreateSchema creates the backing table if it does not exist.
func (p *PostgresStore) CreateSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS window_records (
			key        TEXT PRIMARY KEY,
			payload    BYTEA NOT NULL,
			expires_at TIMESTAMPTZ NOT NULL
		)
	`

	_, err := p.pool.Exec(ctx, query)

	return err
}

func (p *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	query := `
		SELECT payload
		FROM window_records
		WHERE key = $1 AND expires_at > now()
	`

	var payload []byte

	err := p.pool.QueryRow(ctx, query, key).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return payload, nil
}

func (p *PostgresStore) Put(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	query := `
		INSERT INTO window_records (key, payload, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE
		SET payload = EXCLUDED.payload, expires_at = EXCLUDED.expires_at
	`

	_, err := p.pool.Exec(ctx, query, key, payload, time.Now().Add(ttl))

	return err
}

// PurgeExpired deletes rows whose expiry has passed and returns how many
// were removed. Intended for a periodic maintenance job.
func (p *PostgresStore) PurgeExpired(ctx context.Context) (int64, error) {
	tag, err := p.pool.Exec(ctx, `DELETE FROM window_records WHERE expires_at <= now()`)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

// Compile-time check.
var _ ratelimit.Store = (*PostgresStore)(nil)
