package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRole rejects tokens whose role claim is not one of the given roles.
// Deletion authorization proper lives in the service layer; this gate only
// keeps tokens with unknown roles off the protected surface.
func RequireRole(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}
