package ports

import "context"

// ResetPasswordInput carries an OTP-authorized password reset.
type ResetPasswordInput struct {
	PhoneNumber string
	OTP         string
	NewPassword string
}

// RecoveryService drives the OTP-based password recovery state machine.
type RecoveryService interface {
	// ForgotPassword issues a fresh code, mails it, and returns a masked
	// rendering of the recipient address for display. A previously issued
	// code is silently overwritten.
	ForgotPassword(ctx context.Context, phone string) (string, error)
	// VerifyOTP checks a candidate code without consuming it.
	VerifyOTP(ctx context.Context, phone, code string) error
	// ResetPassword consumes a matching code and stores the new password.
	// On mismatch the stored code stays usable.
	ResetPassword(ctx context.Context, in ResetPasswordInput) error
}
