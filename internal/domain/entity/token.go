package entity

import (
	"time"
)

// AuthToken is the opaque bearer credential bound 1:1 to a user.
// Tokens never expire and are never rotated; re-authenticating returns
// the same key.
type AuthToken struct {
	Key       string
	UserID    string
	CreatedAt time.Time
}
