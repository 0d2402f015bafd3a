package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/workforce/identity-service/internal/api/metrics"
	"github.com/workforce/identity-service/internal/core/domain"
	"github.com/workforce/identity-service/internal/core/ports"
)

// RecoveryHandler handles HTTP requests for OTP-based password recovery.
type RecoveryHandler struct {
	service ports.RecoveryService
}

func NewRecoveryHandler(service ports.RecoveryService) *RecoveryHandler {
	return &RecoveryHandler{service: service}
}

// ForgotPassword issues and mails a recovery code.
//
// @Summary      Request a password recovery code
// @Tags         recovery
// @Produce      json
// @Param        phone  path      string  true  "Phone number"
// @Success      200    {object}  forgotPasswordResponse
// @Failure      404    {object}  messageResponse
// @Router       /users/forgot-password/{phone} [post]
func (h *RecoveryHandler) ForgotPassword(c echo.Context) error {
	maskedEmail, err := h.service.ForgotPassword(c.Request().Context(), c.Param("phone"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, messageResponse{Message: "There is no user with this phone number."})
		}
		return err
	}

	metrics.RecoveryCodesIssuedTotal.Inc()
	return c.JSON(http.StatusOK, forgotPasswordResponse{
		Message: "A one time password has been sent to your email.",
		Email:   maskedEmail,
	})
}

// VerifyOTP checks a candidate code without consuming it.
//
// @Summary      Verify a recovery code
// @Tags         recovery
// @Produce      json
// @Param        phone  path      string  true  "Phone number"
// @Param        otp    query     string  true  "Candidate code"
// @Success      200    {object}  messageResponse
// @Failure      401    {object}  messageResponse
// @Failure      404    {object}  messageResponse
// @Router       /users/verify-otp/{phone} [post]
func (h *RecoveryHandler) VerifyOTP(c echo.Context) error {
	err := h.service.VerifyOTP(c.Request().Context(), c.Param("phone"), c.QueryParam("otp"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Correct otp"})
}

// ResetPassword consumes a matching code and stores the new password.
//
// @Summary      Reset password with a recovery code
// @Tags         recovery
// @Accept       json
// @Produce      json
// @Param        body  body      resetPasswordRequest  true  "Reset details"
// @Success      200   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /users/forgot-password/change-password [put]
func (h *RecoveryHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.service.ResetPassword(c.Request().Context(), ports.ResetPasswordInput{
		PhoneNumber: req.PhoneNumber,
		OTP:         req.OTP,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		metrics.RecoveryResetsTotal.WithLabelValues(resetOutcome(err)).Inc()
		return err
	}

	metrics.RecoveryResetsTotal.WithLabelValues("reset").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Password updated successfully"})
}

func resetOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrOTPMismatch):
		return "rejected"
	case errors.Is(err, domain.ErrNoActiveOTP):
		return "no_active_otp"
	default:
		return "error"
	}
}
