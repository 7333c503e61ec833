package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/recipe-app-api/internal/domain/entity"
	"github.com/oksasatya/recipe-app-api/internal/domain/repository"
)

type TagRepository struct {
	pool *pgxpool.Pool
}

func NewTagRepository(pool *pgxpool.Pool) *TagRepository {
	return &TagRepository{pool: pool}
}

func (r *TagRepository) Create(t *entity.Tag) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO tags (name, user_id)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, t.Name, t.UserID)
	return row.Scan(&t.ID, &t.CreatedAt)
}

// ListByUser returns the user's tags ordered by name descending. The
// "C" collation keeps the order bytewise regardless of database locale.
func (r *TagRepository) ListByUser(userID string) ([]entity.Tag, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, user_id, created_at
		FROM tags
		WHERE user_id = $1
		ORDER BY name COLLATE "C" DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Tag, 0)
	for rows.Next() {
		var t entity.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.UserID, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

type IngredientRepository struct {
	pool *pgxpool.Pool
}

func NewIngredientRepository(pool *pgxpool.Pool) *IngredientRepository {
	return &IngredientRepository{pool: pool}
}

func (r *IngredientRepository) Create(i *entity.Ingredient) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO ingredients (name, user_id)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, i.Name, i.UserID)
	return row.Scan(&i.ID, &i.CreatedAt)
}

func (r *IngredientRepository) ListByUser(userID string) ([]entity.Ingredient, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, user_id, created_at
		FROM ingredients
		WHERE user_id = $1
		ORDER BY name COLLATE "C" DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Ingredient, 0)
	for rows.Next() {
		var i entity.Ingredient
		if err := rows.Scan(&i.ID, &i.Name, &i.UserID, &i.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

var (
	_ repository.TagRepository        = (*TagRepository)(nil)
	_ repository.IngredientRepository = (*IngredientRepository)(nil)
)
