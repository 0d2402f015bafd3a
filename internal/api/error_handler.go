package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/workforce/identity-service/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"message": "<reason>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors map to deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidRole):
		return http.StatusBadRequest, "The role provided is not correct"
	case errors.Is(err, domain.ErrInvalidEmail):
		return http.StatusBadRequest, "The email you entered is not valid"
	case errors.Is(err, domain.ErrPhoneTaken):
		return http.StatusBadRequest, "There is a user with this phone number"
	case errors.Is(err, domain.ErrEmailVerification):
		return http.StatusInternalServerError, "Error occurred while validating email"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest, "Invalid username or password"
	case errors.Is(err, domain.ErrWrongRole):
		return http.StatusUnauthorized, "You are not allowed to access this level"
	case errors.Is(err, domain.ErrIncorrectPassword):
		return http.StatusUnauthorized, "Incorrect password"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "You are not authorized to delete this user"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "User can't be found"
	case errors.Is(err, domain.ErrTargetNotFound):
		return http.StatusNotFound, "User to be deleted can't be found"
	case errors.Is(err, domain.ErrNoActiveOTP):
		return http.StatusNotFound, "There is no otp found"
	case errors.Is(err, domain.ErrOTPMismatch):
		return http.StatusUnauthorized, "The phone number or otp is incorrect"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
