package repository

import "github.com/oksasatya/recipe-app-api/internal/domain/entity"

// TokenRepository manages the single opaque token bound to each user.
type TokenRepository interface {
	// GetOrCreate returns the user's existing token, or stores key as the
	// new one. Issue is idempotent: concurrent callers observe one key.
	GetOrCreate(userID, key string) (*entity.AuthToken, error)
	GetByKey(key string) (*entity.AuthToken, error)
	DeleteForUser(userID string) error
}
