package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/workforce/identity-service/internal/core/domain"
	"github.com/workforce/identity-service/internal/core/ports"
	"github.com/workforce/identity-service/internal/pkg/password"
)

const (
	otpMailSubject = "Password Reset Request"
	otpMailBody    = "Here is your otp for resetting your password: "
)

// RecoveryService implements OTP-based password recovery. Codes are stored
// hashed; issuing a new code silently overwrites the previous one
// (last-write-wins, no history, no expiry).
type RecoveryService struct {
	repo   ports.UserRepository
	mailer ports.Mailer
	log    zerolog.Logger
}

func NewRecoveryService(repo ports.UserRepository, mailer ports.Mailer, log zerolog.Logger) *RecoveryService {
	return &RecoveryService{repo: repo, mailer: mailer, log: log}
}

// ForgotPassword generates a 6-digit code, mails it to the user's address,
// stores its hash, and returns the masked address for display.
func (s *RecoveryService) ForgotPassword(ctx context.Context, phone string) (string, error) {
	user, err := s.repo.FindByPhone(ctx, phone)
	if err != nil {
		return "", err
	}

	code := generateCode()

	if err := s.mailer.Send(ctx, user.Email, otpMailSubject, otpMailBody+code); err != nil {
		return "", err
	}

	hash, err := password.Hash(code)
	if err != nil {
		return "", err
	}
	user.OTP = hash

	if err := s.repo.Update(ctx, user); err != nil {
		return "", err
	}

	s.log.Info().Str("user_id", user.ID).Msg("recovery code issued")
	return MaskEmail(user.Email), nil
}

// VerifyOTP checks a candidate code against the stored hash without
// consuming it.
func (s *RecoveryService) VerifyOTP(ctx context.Context, phone, code string) error {
	user, err := s.repo.FindByPhone(ctx, phone)
	if err != nil {
		return err
	}

	if !user.HasActiveOTP() {
		return domain.ErrNoActiveOTP
	}

	if !password.Verify(code, user.OTP) {
		return domain.ErrOTPMismatch
	}
	return nil
}

// ResetPassword consumes a matching code and stores the new password. On a
// mismatch nothing changes; the stored code remains usable for further
// attempts.
func (s *RecoveryService) ResetPassword(ctx context.Context, in ports.ResetPasswordInput) error {
	user, err := s.repo.FindByPhone(ctx, in.PhoneNumber)
	if err != nil {
		return err
	}

	if !user.HasActiveOTP() {
		return domain.ErrNoActiveOTP
	}

	if !password.Verify(in.OTP, user.OTP) {
		return domain.ErrOTPMismatch
	}

	hash, err := password.Hash(in.NewPassword)
	if err != nil {
		return err
	}

	user.OTP = ""
	user.PasswordHash = hash

	if err := s.repo.Update(ctx, user); err != nil {
		return err
	}

	s.log.Info().Str("user_id", user.ID).Msg("password reset via recovery code")
	return nil
}

// generateCode returns a uniformly random 6-digit code, zero-padded.
func generateCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		// fallback: derive from the clock
		return fmt.Sprintf("%06d", time.Now().UnixNano()%1_000_000)
	}
	return fmt.Sprintf("%06d", n.Int64())
}

// MaskEmail renders an address for display, hiding most of the local part.
// The short-local-part branches are deliberate, observed behaviour and are
// not collapsed into the general rule:
//
//	n <= 2  -> local part unchanged
//	n == 3  -> "**" + last character
//	n == 4  -> "**" + last two characters
//	n >= 5  -> (n-4) asterisks + last four characters
//
// The domain (everything from '@' on) is never masked.
func MaskEmail(email string) string {
	at := strings.Index(email, "@")
	if at < 0 {
		return email
	}
	local, domainPart := email[:at], email[at:]

	charsToMask := len(local) - 4
	var masked string
	switch {
	case charsToMask < -1:
		masked = local
	case charsToMask == -1:
		masked = "**" + local[len(local)-1:]
	case charsToMask == 0:
		masked = "**" + local[len(local)-2:]
	default:
		masked = strings.Repeat("*", charsToMask) + local[len(local)-4:]
	}

	return masked + domainPart
}
