package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/workforce/identity-service/internal/core/domain"
	"github.com/workforce/identity-service/internal/core/ports"
	"github.com/workforce/identity-service/internal/pkg/password"
)

// initialPasswordSuffix is appended to the first name to form the
// system-assigned temporary password handed out at registration.
const initialPasswordSuffix = "123"

// UserService orchestrates the identity lifecycle: registration, login,
// profile edits, password changes, and role-gated deletion.
type UserService struct {
	repo   ports.UserRepository
	emails ports.EmailValidator
	tokens ports.TokenIssuer
	log    zerolog.Logger
}

func NewUserService(repo ports.UserRepository, emails ports.EmailValidator, tokens ports.TokenIssuer, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, emails: emails, tokens: tokens, log: log}
}

// Register creates an EMPLOYEE account with a system-assigned temporary
// password. ADMIN accounts are not self-registrable.
func (s *UserService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Role != domain.RoleEmployee {
		return nil, domain.ErrInvalidRole
	}

	if existing, err := s.repo.FindByPhone(ctx, in.PhoneNumber); err == nil && existing != nil {
		return nil, domain.ErrPhoneTaken
	} else if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	if err := s.emails.Validate(ctx, in.Email); err != nil {
		return nil, err
	}

	hash, err := password.Hash(in.FirstName + initialPasswordSuffix)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         in.Role,
		PhoneNumber:  in.PhoneNumber,
		Email:        strings.ToLower(in.Email),
		PasswordHash: hash,
		FirstTime:    true,
		OTP:          "",
		JoinedOn:     time.Now().UTC().Truncate(24 * time.Hour),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to persist user")
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("phone", created.PhoneNumber).Msg("user registered")
	return created, nil
}

// Login verifies credentials and the asserted role. First-time users get no
// token; they must change the assigned password. A stale recovery code is
// cleared by a successful normal login.
func (s *UserService) Login(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
	user, err := s.repo.FindByPhone(ctx, in.PhoneNumber)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(in.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	if user.Role != in.Role {
		return nil, domain.ErrWrongRole
	}

	if user.FirstTime {
		return &ports.LoginResult{Phone: user.PhoneNumber, FirstTime: true}, nil
	}

	if user.HasActiveOTP() {
		user.OTP = ""
		if err := s.repo.Update(ctx, user); err != nil {
			return nil, err
		}
		s.log.Info().Str("user_id", user.ID).Msg("stale recovery code cleared on login")
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	return &ports.LoginResult{Token: token, Phone: user.PhoneNumber}, nil
}

// EditProfile overwrites the mutable profile fields after the same email and
// phone-uniqueness gates as registration. Keeping one's own phone number is
// not a conflict.
func (s *UserService) EditProfile(ctx context.Context, id string, in ports.EditProfileInput) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if holder, err := s.repo.FindByPhone(ctx, in.PhoneNumber); err == nil && holder != nil && user.PhoneNumber != in.PhoneNumber {
		return domain.ErrPhoneTaken
	} else if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	if err := s.emails.Validate(ctx, in.Email); err != nil {
		return err
	}

	user.FirstName = in.FirstName
	user.LastName = in.LastName
	user.PhoneNumber = in.PhoneNumber
	user.Email = strings.ToLower(in.Email)

	if err := s.repo.Update(ctx, user); err != nil {
		return err
	}

	s.log.Info().Str("user_id", user.ID).Msg("profile updated")
	return nil
}

// ChangePassword verifies the old password and stores the new one. The
// first-time flag is cleared here; this is the only path that turns a
// freshly registered account into a token-eligible one.
func (s *UserService) ChangePassword(ctx context.Context, in ports.ChangePasswordInput) error {
	user, err := s.repo.FindByID(ctx, in.ID)
	if err != nil {
		return err
	}

	if !password.Verify(in.OldPassword, user.PasswordHash) {
		return domain.ErrIncorrectPassword
	}

	hash, err := password.Hash(in.NewPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = hash
	if user.FirstTime {
		user.FirstTime = false
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return err
	}

	s.log.Info().Str("user_id", user.ID).Msg("password changed")
	return nil
}

// DeleteUser removes the target account when the deletion rule allows it.
// The actor is resolved before the target; each missing lookup maps to its
// own error so the caller can tell them apart.
func (s *UserService) DeleteUser(ctx context.Context, actorID, targetID string) error {
	actor, err := s.repo.FindByID(ctx, actorID)
	if err != nil {
		return err
	}

	target, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrTargetNotFound
		}
		return err
	}

	if !domain.CanDelete(actor.Role, target.Role) {
		return domain.ErrUnauthorized
	}

	if err := s.repo.Delete(ctx, targetID); err != nil {
		return err
	}

	s.log.Info().Str("actor_id", actorID).Str("target_id", targetID).Msg("user deleted")
	return nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.repo.FindAll(ctx)
}

func (s *UserService) ListEmployees(ctx context.Context) ([]*domain.User, error) {
	return s.repo.FindByRole(ctx, domain.RoleEmployee)
}

func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return s.repo.FindByPhone(ctx, phone)
}
