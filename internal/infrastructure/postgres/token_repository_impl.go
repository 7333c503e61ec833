package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/recipe-app-api/internal/domain/entity"
	"github.com/oksasatya/recipe-app-api/internal/domain/repository"
)

type TokenRepository struct {
	pool *pgxpool.Pool
}

func NewTokenRepository(pool *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{pool: pool}
}

// GetOrCreate inserts key for the user unless a token already exists,
// then reads back whichever key won. ON CONFLICT DO NOTHING keeps the
// issue path idempotent under concurrent logins.
func (r *TokenRepository) GetOrCreate(userID, key string) (*entity.AuthToken, error) {
	ctx := context.Background()
	if _, err := r.pool.Exec(ctx, `
		INSERT INTO auth_tokens (key, user_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO NOTHING
	`, key, userID); err != nil {
		return nil, err
	}

	t := &entity.AuthToken{}
	row := r.pool.QueryRow(ctx, `
		SELECT key, user_id, created_at
		FROM auth_tokens
		WHERE user_id = $1
	`, userID)
	if err := row.Scan(&t.Key, &t.UserID, &t.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *TokenRepository) GetByKey(key string) (*entity.AuthToken, error) {
	ctx := context.Background()
	t := &entity.AuthToken{}

	row := r.pool.QueryRow(ctx, `
		SELECT key, user_id, created_at
		FROM auth_tokens
		WHERE key = $1
	`, key)
	if err := row.Scan(&t.Key, &t.UserID, &t.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *TokenRepository) DeleteForUser(userID string) error {
	ctx := context.Background()
	_, err := r.pool.Exec(ctx, `DELETE FROM auth_tokens WHERE user_id = $1`, userID)
	return err
}

var _ repository.TokenRepository = (*TokenRepository)(nil)
