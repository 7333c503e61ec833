package helpers

import (
	"crypto/rand"
	"encoding/hex"
)

// TokenKeyLen is the length of an opaque API token key in hex characters.
const TokenKeyLen = 40

// GenerateTokenKey returns a 40-char hex key from 20 random bytes.
func GenerateTokenKey() (string, error) {
	b := make([]byte, TokenKeyLen/2)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
