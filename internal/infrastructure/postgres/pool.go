package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

func NewPool(ctx context.Context, dsn string, maxConns, minConns int32, maxConnLife time.Duration) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = maxConns
	cfg.MinConns = minConns
	cfg.MaxConnLifetime = maxConnLife
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// WaitForPool retries NewPool until the database accepts connections or
// the wait budget runs out. Containers often start the API before
// postgres is ready to serve.
func WaitForPool(ctx context.Context, dsn string, maxConns, minConns int32, maxConnLife, wait time.Duration, logger *logrus.Logger) (*pgxpool.Pool, error) {
	deadline := time.Now().Add(wait)
	for {
		pool, err := NewPool(ctx, dsn, maxConns, minConns, maxConnLife)
		if err == nil {
			return pool, nil
		}
		if time.Now().After(deadline) {
			return nil, err
		}
		logger.WithError(err).Info("database unavailable, retrying in 1s")
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Second):
		}
	}
}
