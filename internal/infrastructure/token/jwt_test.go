package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/workforce/identity-service/internal/core/domain"
)

func TestJWTIssuer_Issue(t *testing.T) {
	issuer := NewJWTIssuer("mint-secret", time.Hour)
	user := &domain.User{
		ID:          "u1",
		FirstName:   "Alice",
		LastName:    "Smith",
		Role:        domain.RoleEmployee,
		PhoneNumber: "0341111111",
		Email:       "alice@example.com",
	}

	signed, err := issuer.Issue(user)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(signed, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("mint-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("minted token does not parse: %v", err)
	}

	if claims["sub"] != "u1" || claims["phone"] != "0341111111" || claims["role"] != domain.RoleEmployee {
		t.Fatalf("claims wrong: %+v", claims)
	}
	if claims["name"] != "Alice Smith" {
		t.Fatalf("name claim = %v", claims["name"])
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		t.Fatalf("missing exp claim: %v", err)
	}
	if until := time.Until(exp.Time); until <= 0 || until > time.Hour+time.Minute {
		t.Fatalf("unexpected expiry window: %v", until)
	}
}

func TestJWTIssuer_WrongKeyFailsVerification(t *testing.T) {
	issuer := NewJWTIssuer("mint-secret", time.Hour)
	signed, err := issuer.Issue(&domain.User{ID: "u1", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	_, err = jwt.Parse(signed, func(*jwt.Token) (interface{}, error) {
		return []byte("other-secret"), nil
	})
	if err == nil {
		t.Fatalf("token verified under the wrong key")
	}
}
