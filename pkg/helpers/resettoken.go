package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ResetTokenManager signs short-lived password-reset tokens. These are
// separate from API tokens: reset links must expire, API tokens never do.
type ResetTokenManager struct {
	Secret []byte
	TTL    time.Duration
}

func NewResetTokenManager(secret string, ttl time.Duration) *ResetTokenManager {
	return &ResetTokenManager{Secret: []byte(secret), TTL: ttl}
}

const resetPurpose = "password_reset"

type ResetClaims struct {
	UserID  string `json:"uid"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

func (m *ResetTokenManager) Generate(userID string) (string, time.Time, error) {
	exp := time.Now().Add(m.TTL)
	claims := &ResetClaims{
		UserID:  userID,
		Purpose: resetPurpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.Secret)
	return s, exp, err
}

func (m *ResetTokenManager) Parse(tokenStr string) (*ResetClaims, error) {
	claims := &ResetClaims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Purpose != resetPurpose {
		return nil, errors.New("wrong token purpose")
	}
	return claims, nil
}
