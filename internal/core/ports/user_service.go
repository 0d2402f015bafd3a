package ports

import (
	"context"

	"github.com/workforce/identity-service/internal/core/domain"
)

// RegisterInput carries a registration candidate. The initial password is
// system-assigned, not caller-supplied.
type RegisterInput struct {
	FirstName   string
	LastName    string
	Role        string
	PhoneNumber string
	Email       string
}

// LoginInput carries login credentials plus the role the caller asserts.
type LoginInput struct {
	PhoneNumber string
	Password    string
	Role        string
}

// LoginResult is the outcome of a successful credential check. When FirstTime
// is set no token is issued; the user must change the assigned password first.
type LoginResult struct {
	Token     string
	Phone     string
	FirstTime bool
}

// EditProfileInput carries the mutable profile fields.
type EditProfileInput struct {
	FirstName   string
	LastName    string
	PhoneNumber string
	Email       string
}

// ChangePasswordInput carries an authenticated password change.
type ChangePasswordInput struct {
	ID          string
	OldPassword string
	NewPassword string
}

type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
	EditProfile(ctx context.Context, id string, in EditProfileInput) error
	ChangePassword(ctx context.Context, in ChangePasswordInput) error
	DeleteUser(ctx context.Context, actorID, targetID string) error
	ListUsers(ctx context.Context) ([]*domain.User, error)
	ListEmployees(ctx context.Context) ([]*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
}
