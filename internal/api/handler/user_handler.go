package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/workforce/identity-service/internal/api/metrics"
	"github.com/workforce/identity-service/internal/core/domain"
	"github.com/workforce/identity-service/internal/core/ports"
)

// UserHandler handles HTTP requests for the identity lifecycle.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Create registers a new EMPLOYEE account.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	_, err := h.service.Register(c.Request().Context(), ports.RegisterInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Role:        req.Role,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
	})
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues(registrationOutcome(err)).Inc()
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, messageResponse{Message: "User registered"})
}

func registrationOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidRole):
		return "invalid_role"
	case errors.Is(err, domain.ErrInvalidEmail):
		return "invalid_email"
	case errors.Is(err, domain.ErrPhoneTaken):
		return "phone_taken"
	case errors.Is(err, domain.ErrEmailVerification):
		return "verifier_error"
	default:
		return "error"
	}
}

// List returns all users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  userSummaryResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSummaries(users))
}

// ListEmployees returns users holding the EMPLOYEE role.
//
// @Summary      List employees
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  userSummaryResponse
// @Router       /users/employees [get]
func (h *UserHandler) ListEmployees(c echo.Context) error {
	users, err := h.service.ListEmployees(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSummaries(users))
}

// GetByID returns the full projection of one user.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  userDetailResponse
// @Failure      404  {object}  messageResponse
// @Router       /users/{id} [get]
func (h *UserHandler) GetByID(c echo.Context) error {
	user, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDetail(user))
}

// GetByPhone returns the full projection of one user, or a null body when no
// user holds the phone number.
//
// @Summary      Get a user by phone number
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        phone  path      string  true  "Phone number"
// @Success      200    {object}  userDetailResponse
// @Router       /users/phone/{phone} [get]
func (h *UserHandler) GetByPhone(c echo.Context) error {
	user, err := h.service.GetByPhone(c.Request().Context(), c.Param("phone"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusOK, nil)
		}
		return err
	}
	return c.JSON(http.StatusOK, toDetail(user))
}

// Login authenticates a user against an asserted role.
//
// @Summary      Login
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Router       /users/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Login(c.Request().Context(), ports.LoginInput{
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
		Role:        req.Role,
	})
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginOutcome(err)).Inc()
		return err
	}

	if result.FirstTime {
		metrics.LoginsTotal.WithLabelValues("must_change_password").Inc()
		firstTime := true
		return c.JSON(http.StatusOK, loginResponse{
			Message:     "Correct credentials, change your password",
			IsFirstTime: &firstTime,
		})
	}

	metrics.LoginsTotal.WithLabelValues("authenticated").Inc()
	return c.JSON(http.StatusOK, loginResponse{
		Phone:   result.Phone,
		Token:   result.Token,
		Message: "Login successful",
	})
}

func loginOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "bad_credentials"
	case errors.Is(err, domain.ErrWrongRole):
		return "wrong_role"
	default:
		return "error"
	}
}

// Delete removes a target account on behalf of an actor.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id        path      string  true  "Acting user id"
// @Param        targetId  path      string  true  "User id to delete"
// @Success      200       {object}  messageResponse
// @Failure      401       {object}  messageResponse
// @Failure      404       {object}  messageResponse
// @Router       /users/{id}/{targetId} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	err := h.service.DeleteUser(c.Request().Context(), c.Param("id"), c.Param("targetId"))
	if err != nil {
		metrics.DeletionsTotal.WithLabelValues(deletionOutcome(err)).Inc()
		return err
	}

	metrics.DeletionsTotal.WithLabelValues("deleted").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "User deleted successfully"})
}

func deletionOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrTargetNotFound):
		return "not_found"
	default:
		return "error"
	}
}

// EditProfile overwrites the mutable profile fields.
//
// @Summary      Edit a user's profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "User id"
// @Param        body  body      editProfileRequest  true  "Profile fields"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /users/edit-profile/{id} [put]
func (h *UserHandler) EditProfile(c echo.Context) error {
	var req editProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.service.EditProfile(c.Request().Context(), c.Param("id"), ports.EditProfileInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "User updated successfully"})
}

// ChangePassword performs an authenticated password change.
//
// @Summary      Change password
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changePasswordRequest  true  "Password change"
// @Success      200   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /users/change-password [put]
func (h *UserHandler) ChangePassword(c echo.Context) error {
	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.service.ChangePassword(c.Request().Context(), ports.ChangePasswordInput{
		ID:          req.ID,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Password updated successfully"})
}

func toSummaries(users []*domain.User) []userSummaryResponse {
	out := make([]userSummaryResponse, 0, len(users))
	for _, u := range users {
		out = append(out, userSummaryResponse{
			ID:          u.ID,
			FirstName:   u.FirstName,
			LastName:    u.LastName,
			Role:        u.Role,
			PhoneNumber: u.PhoneNumber,
			Email:       u.Email,
			JoinedOn:    formatJoinedOn(u.JoinedOn),
		})
	}
	return out
}

func toDetail(u *domain.User) userDetailResponse {
	return userDetailResponse{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Role:        u.Role,
		PhoneNumber: u.PhoneNumber,
		Email:       u.Email,
		IsFirstTime: u.FirstTime,
		JoinedOn:    formatJoinedOn(u.JoinedOn),
	}
}
