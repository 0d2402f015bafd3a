package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/workforce/identity-service/internal/core/domain"
)

// stubVerifier plays back a canned report or error.
type stubVerifier struct {
	report *domain.EmailVerification
	err    error
}

func (v *stubVerifier) Verify(_ context.Context, _ string) (*domain.EmailVerification, error) {
	return v.report, v.err
}

func okReport() *domain.EmailVerification {
	return &domain.EmailVerification{
		Deliverability:    domain.Deliverable,
		IsValidFormat:     domain.Flag{Value: true},
		IsDisposableEmail: domain.Flag{Value: false},
		IsSmtpValid:       domain.Flag{Value: true},
	}
}

func TestEmailValidator_ReportVerdicts(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*domain.EmailVerification)
		want   error
	}{
		{"deliverable", func(*domain.EmailVerification) {}, nil},
		{"undeliverable", func(r *domain.EmailVerification) {
			r.Deliverability = domain.Undeliverable
		}, domain.ErrInvalidEmail},
		{"unknown with failed smtp probe", func(r *domain.EmailVerification) {
			r.Deliverability = domain.UnknownDelivery
			r.IsSmtpValid = domain.Flag{Value: false}
		}, domain.ErrInvalidEmail},
		{"unknown with passing smtp probe", func(r *domain.EmailVerification) {
			r.Deliverability = domain.UnknownDelivery
		}, nil},
		{"disposable", func(r *domain.EmailVerification) {
			r.IsDisposableEmail = domain.Flag{Value: true}
		}, domain.ErrInvalidEmail},
		{"bad format", func(r *domain.EmailVerification) {
			r.IsValidFormat = domain.Flag{Value: false}
		}, domain.ErrInvalidEmail},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			report := okReport()
			tc.mutate(report)
			svc := NewEmailValidatorService(&stubVerifier{report: report}, zerolog.Nop())

			err := svc.Validate(context.Background(), "someone@example.com")
			if tc.want == nil {
				if err != nil {
					t.Fatalf("expected acceptance, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestEmailValidator_DegradedFallsBackToFormatCheck(t *testing.T) {
	degraded := fmt.Errorf("verification service returned 429: %w", domain.ErrVerifierDegraded)
	svc := NewEmailValidatorService(&stubVerifier{err: degraded}, zerolog.Nop())

	cases := []struct {
		email string
		ok    bool
	}{
		{"someone@example.com", true},
		{"first.last@sub.example.org", true},
		{"user+tag@example.io", true},
		{"not-an-email", false},
		{"двойной@example.com", false},
		{"user@example.toolongtld", false},
		{"user@example", false},
	}
	for _, tc := range cases {
		err := svc.Validate(context.Background(), tc.email)
		if tc.ok && err != nil {
			t.Errorf("%s: expected fallback acceptance, got %v", tc.email, err)
		}
		if !tc.ok && !errors.Is(err, domain.ErrInvalidEmail) {
			t.Errorf("%s: expected ErrInvalidEmail, got %v", tc.email, err)
		}
	}
}

func TestEmailValidator_TransportFailureIsHardError(t *testing.T) {
	svc := NewEmailValidatorService(&stubVerifier{err: errors.New("connection refused")}, zerolog.Nop())

	err := svc.Validate(context.Background(), "someone@example.com")
	if !errors.Is(err, domain.ErrEmailVerification) {
		t.Fatalf("expected ErrEmailVerification, got %v", err)
	}
}
