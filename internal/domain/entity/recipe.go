package entity

import (
	"time"
)

// Tag is a user-owned recipe label. Ownership is exclusive: a tag is
// never shared across users.
type Tag struct {
	ID        int64
	Name      string
	UserID    string
	CreatedAt time.Time
}

// Ingredient is a user-owned recipe component with the same ownership
// shape as Tag.
type Ingredient struct {
	ID        int64
	Name      string
	UserID    string
	CreatedAt time.Time
}
