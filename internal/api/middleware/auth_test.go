package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const testSecret = "unit-test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func runAuth(t *testing.T, header string) (int, echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	err := Auth(testSecret)(next)(c)
	return rec.Code, c, err
}

func TestAuth_ValidTokenInjectsClaims(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":   "u1",
		"phone": "0341111111",
		"role":  "EMPLOYEE",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	code, c, err := runAuth(t, "Bearer "+token)
	if err != nil {
		t.Fatalf("middleware rejected a valid token: %v", err)
	}
	if code != http.StatusOK {
		t.Fatalf("code = %d", code)
	}
	if got := c.Get("user_id"); got != "u1" {
		t.Errorf("user_id = %v", got)
	}
	if got := c.Get("phone"); got != "0341111111" {
		t.Errorf("phone = %v", got)
	}
	if got := c.Get("role"); got != "EMPLOYEE" {
		t.Errorf("role = %v", got)
	}
}

func TestAuth_Rejections(t *testing.T) {
	expired := signToken(t, testSecret, jwt.MapClaims{
		"sub": "u1", "exp": time.Now().Add(-time.Hour).Unix(),
	})
	wrongKey := signToken(t, "some-other-secret", jwt.MapClaims{
		"sub": "u1", "exp": time.Now().Add(time.Hour).Unix(),
	})

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic dXNlcjpwYXNz"},
		{"garbage token", "Bearer not.a.jwt"},
		{"expired token", "Bearer " + expired},
		{"wrong signing key", "Bearer " + wrongKey},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := runAuth(t, tc.header)
			he, ok := err.(*echo.HTTPError)
			if !ok {
				t.Fatalf("expected an HTTP error, got %v", err)
			}
			if he.Code != http.StatusUnauthorized {
				t.Fatalf("code = %d", he.Code)
			}
		})
	}
}
