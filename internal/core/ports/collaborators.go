package ports

import (
	"context"

	"github.com/workforce/identity-service/internal/core/domain"
)

// EmailVerifier fetches the deliverability report for an address from the
// external verification service. Implementations return
// domain.ErrVerifierDegraded when the service answered with a retryable
// status; any other error means no response was obtained at all.
type EmailVerifier interface {
	Verify(ctx context.Context, email string) (*domain.EmailVerification, error)
}

// EmailValidator classifies an address as acceptable (nil), unacceptable
// (domain.ErrInvalidEmail), or unverifiable (domain.ErrEmailVerification).
type EmailValidator interface {
	Validate(ctx context.Context, email string) error
}

// Mailer delivers a single outbound message.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// TokenIssuer mints a session credential scoped to the given identity.
type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
}
