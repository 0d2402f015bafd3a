package service

import (
	"context"
	"errors"
	"regexp"

	"github.com/rs/zerolog"

	"github.com/workforce/identity-service/internal/core/domain"
	"github.com/workforce/identity-service/internal/core/ports"
)

// emailPattern is the local well-formedness fallback used when the external
// verification service is degraded.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_+&*-]+(?:\.[a-zA-Z0-9_+&*-]+)*@(?:[a-zA-Z0-9-]+\.)+[a-zA-Z]{2,7}$`)

// EmailValidatorService classifies addresses using the external verification
// service, degrading to a local regex check when that service answers with a
// retryable status. Only a transport-level failure (no response at all) is
// surfaced as a hard error.
type EmailValidatorService struct {
	verifier ports.EmailVerifier
	log      zerolog.Logger
}

func NewEmailValidatorService(verifier ports.EmailVerifier, log zerolog.Logger) *EmailValidatorService {
	return &EmailValidatorService{verifier: verifier, log: log}
}

// Validate returns nil when the address is acceptable, domain.ErrInvalidEmail
// when it is not, and domain.ErrEmailVerification when the verification
// service could not be reached and no verdict is possible.
func (s *EmailValidatorService) Validate(ctx context.Context, email string) error {
	report, err := s.verifier.Verify(ctx, email)
	switch {
	case err == nil:
		if report.Rejects() {
			s.log.Debug().
				Str("deliverability", report.Deliverability).
				Bool("smtp_valid", report.IsSmtpValid.Value).
				Bool("disposable", report.IsDisposableEmail.Value).
				Bool("valid_format", report.IsValidFormat.Value).
				Msg("email rejected by verification service")
			return domain.ErrInvalidEmail
		}
		return nil

	case errors.Is(err, domain.ErrVerifierDegraded):
		s.log.Warn().Err(err).Msg("verification service degraded, using local format check")
		if !emailPattern.MatchString(email) {
			return domain.ErrInvalidEmail
		}
		return nil

	default:
		s.log.Error().Err(err).Msg("email verification request failed")
		return domain.ErrEmailVerification
	}
}
