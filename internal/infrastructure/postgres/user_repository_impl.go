package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/recipe-app-api/internal/domain/entity"
	"github.com/oksasatya/recipe-app-api/internal/domain/repository"
)

const uniqueViolation = "23505"

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(u *entity.User) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, name, avatar_url, is_staff, is_superuser, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, u.Email, u.Password, u.Name, u.AvatarURL, u.IsStaff, u.IsSuperuser, u.IsActive)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(id string) (*entity.User, error) {
	return r.getBy(`WHERE id = $1`, id)
}

func (r *UserRepository) GetByEmail(email string) (*entity.User, error) {
	return r.getBy(`WHERE email = $1`, email)
}

func (r *UserRepository) getBy(where string, arg any) (*entity.User, error) {
	ctx := context.Background()
	u := &entity.User{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, name, avatar_url, is_staff, is_superuser, is_active, created_at, updated_at
		FROM users
	`+where, arg)

	if err := row.Scan(&u.ID, &u.Email, &u.Password, &u.Name, &u.AvatarURL,
		&u.IsStaff, &u.IsSuperuser, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return u, nil
}

func (r *UserRepository) Update(u *entity.User) error {
	ctx := context.Background()
	u.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET email = $1, password_hash = $2, name = $3, avatar_url = $4,
		    is_staff = $5, is_superuser = $6, is_active = $7, updated_at = $8
		WHERE id = $9
	`, u.Email, u.Password, u.Name, u.AvatarURL, u.IsStaff, u.IsSuperuser, u.IsActive, u.UpdatedAt, u.ID)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
