// Package token mints session credentials as HS256 JWTs.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/workforce/identity-service/internal/core/domain"
)

// JWTIssuer signs session tokens scoped to an authenticated identity.
type JWTIssuer struct {
	secret string
	ttl    time.Duration
}

func NewJWTIssuer(secret string, ttl time.Duration) *JWTIssuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTIssuer{secret: secret, ttl: ttl}
}

// Issue mints a token carrying the identity claims the API surface relies on.
func (i *JWTIssuer) Issue(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"phone": user.PhoneNumber,
		"email": user.Email,
		"name":  user.FirstName + " " + user.LastName,
		"role":  user.Role,
		"exp":   time.Now().Add(i.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(i.secret))
}
