package application

import (
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/recipe-app-api/internal/domain/entity"
	repo "github.com/oksasatya/recipe-app-api/internal/domain/repository"
)

var ErrNameRequired = errors.New("name is required")

// RecipeService exposes the owner-scoped tag and ingredient
// collections. The owner is always the authenticated identity; it is
// never taken from client input.
type RecipeService struct {
	Tags        repo.TagRepository
	Ingredients repo.IngredientRepository
	Logger      *logrus.Logger
}

func NewRecipeService(tags repo.TagRepository, ingredients repo.IngredientRepository, logger *logrus.Logger) *RecipeService {
	return &RecipeService{Tags: tags, Ingredients: ingredients, Logger: logger}
}

// ListTags returns the user's tags, name descending.
func (s *RecipeService) ListTags(userID string) ([]entity.Tag, error) {
	return s.Tags.ListByUser(userID)
}

// CreateTag stores a tag owned by userID. Blank names are rejected.
func (s *RecipeService) CreateTag(userID, name string) (*entity.Tag, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}
	t := &entity.Tag{Name: name, UserID: userID}
	if err := s.Tags.Create(t); err != nil {
		return nil, err
	}
	return t, nil
}

// ListIngredients returns the user's ingredients, name descending.
// Ingredient creation is repository-only; no endpoint exposes it.
func (s *RecipeService) ListIngredients(userID string) ([]entity.Ingredient, error) {
	return s.Ingredients.ListByUser(userID)
}
