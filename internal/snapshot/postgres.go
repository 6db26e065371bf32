package snapshot

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"lemongrove/internal/domain"
)

type postgresStore struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgres returns a Store backed by the snapshots table.
func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &postgresStore{pool: pool, logger: logger}
}

func (s *postgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	const q = `
SELECT payload
FROM snapshots
WHERE key = $1
`
	var payload []byte
	if err := s.pool.QueryRow(ctx, q, key).Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		s.logger.Error("snapshot get failed", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return payload, nil
}

func (s *postgresStore) Put(ctx context.Context, key string, payload []byte) error {
	return s.PutMany(ctx, []Entry{{Key: key, Payload: payload}})
}

func (s *postgresStore) PutMany(ctx context.Context, entries []Entry) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const q = `
INSERT INTO snapshots (key, payload, updated_at)
VALUES ($1, $2::jsonb, now())
ON CONFLICT (key) DO UPDATE
SET payload = EXCLUDED.payload,
    updated_at = EXCLUDED.updated_at
`
	for _, e := range entries {
		if _, err := tx.Exec(ctx, q, e.Key, string(e.Payload)); err != nil {
			s.logger.Error("snapshot write failed", zap.String("key", e.Key), zap.Error(err))
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	s.logger.Debug("snapshots written", zap.Int("count", len(entries)))
	return nil
}

func (s *postgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
