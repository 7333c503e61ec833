package repository

import "github.com/oksasatya/recipe-app-api/internal/domain/entity"

// TagRepository is the owner-scoped tag collection. Listing is ordered
// by name descending; that ordering is part of the contract.
type TagRepository interface {
	Create(t *entity.Tag) error
	ListByUser(userID string) ([]entity.Tag, error)
}

// IngredientRepository mirrors TagRepository. Create exists for admin
// provisioning and fixtures; the HTTP surface exposes listing only.
type IngredientRepository interface {
	Create(i *entity.Ingredient) error
	ListByUser(userID string) ([]entity.Ingredient, error)
}
