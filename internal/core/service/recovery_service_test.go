package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/workforce/identity-service/internal/core/domain"
	"github.com/workforce/identity-service/internal/core/ports"
	"github.com/workforce/identity-service/internal/pkg/password"
)

// stubMailer records the messages it was asked to send.
type stubMailer struct {
	to      []string
	subject []string
	body    []string
	err     error
}

func (m *stubMailer) Send(_ context.Context, to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.to = append(m.to, to)
	m.subject = append(m.subject, subject)
	m.body = append(m.body, body)
	return nil
}

// lastCode extracts the recovery code from the most recent mail.
func (m *stubMailer) lastCode(t *testing.T) string {
	t.Helper()
	if len(m.body) == 0 {
		t.Fatalf("no mail was sent")
	}
	body := m.body[len(m.body)-1]
	code := strings.TrimPrefix(body, otpMailBody)
	if code == body || len(code) != 6 {
		t.Fatalf("unexpected mail body: %q", body)
	}
	return code
}

func newRecoveryService(repo *stubUserRepo) (*RecoveryService, *stubMailer) {
	mailer := &stubMailer{}
	return NewRecoveryService(repo, mailer, zerolog.Nop()), mailer
}

func seedRecoverable(t *testing.T, repo *stubUserRepo, phone, email string) *domain.User {
	t.Helper()
	return repo.seed(t, &domain.User{
		Role:         domain.RoleEmployee,
		PhoneNumber:  phone,
		Email:        email,
		PasswordHash: mustHash(t, "original"),
	})
}

func TestRecoveryService_ForgotPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc, mailer := newRecoveryService(repo)
	u := seedRecoverable(t, repo, "0342000001", "ivan@example.com")

	masked, err := svc.ForgotPassword(context.Background(), "0342000001")
	if err != nil {
		t.Fatalf("forgot password failed: %v", err)
	}
	if masked != "**an@example.com" {
		t.Fatalf("masked email mismatch: %s", masked)
	}
	if mailer.to[0] != "ivan@example.com" || mailer.subject[0] != otpMailSubject {
		t.Fatalf("mail not addressed correctly: to=%s subject=%s", mailer.to[0], mailer.subject[0])
	}

	code := mailer.lastCode(t)
	stored := repo.byID[u.ID]
	if stored.OTP == code {
		t.Fatalf("code must be stored hashed, not in clear")
	}
	if !password.Verify(code, stored.OTP) {
		t.Fatalf("mailed code does not verify against stored hash")
	}
}

func TestRecoveryService_ForgotPassword_UnknownPhone(t *testing.T) {
	repo := newStubUserRepo()
	svc, mailer := newRecoveryService(repo)

	if _, err := svc.ForgotPassword(context.Background(), "0000000000"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if len(mailer.body) != 0 {
		t.Fatalf("no mail should be sent for an unknown phone")
	}
}

func TestRecoveryService_ForgotPassword_MailFailureStoresNothing(t *testing.T) {
	repo := newStubUserRepo()
	svc, mailer := newRecoveryService(repo)
	mailer.err = errors.New("smtp down")
	u := seedRecoverable(t, repo, "0342000002", "judy@example.com")

	if _, err := svc.ForgotPassword(context.Background(), "0342000002"); err == nil {
		t.Fatalf("expected send error")
	}
	if repo.byID[u.ID].OTP != "" {
		t.Fatalf("no code should be stored when the mail never went out")
	}
}

func TestRecoveryService_VerifyOTP(t *testing.T) {
	repo := newStubUserRepo()
	svc, mailer := newRecoveryService(repo)
	u := seedRecoverable(t, repo, "0342000003", "kate@example.com")

	if _, err := svc.ForgotPassword(context.Background(), "0342000003"); err != nil {
		t.Fatalf("forgot password failed: %v", err)
	}
	code := mailer.lastCode(t)

	if err := svc.VerifyOTP(context.Background(), "0342000003", code); err != nil {
		t.Fatalf("correct code rejected: %v", err)
	}
	// verification is read-only: the code stays valid
	if err := svc.VerifyOTP(context.Background(), "0342000003", code); err != nil {
		t.Fatalf("code should survive verification: %v", err)
	}
	if err := svc.VerifyOTP(context.Background(), "0342000003", "000000"); !errors.Is(err, domain.ErrOTPMismatch) {
		t.Fatalf("expected ErrOTPMismatch, got %v", err)
	}
	if repo.byID[u.ID].OTP == "" {
		t.Fatalf("mismatch must not consume the stored code")
	}
}

func TestRecoveryService_VerifyOTP_NoActiveCode(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newRecoveryService(repo)
	seedRecoverable(t, repo, "0342000004", "liam@example.com")

	if err := svc.VerifyOTP(context.Background(), "0342000004", "123456"); !errors.Is(err, domain.ErrNoActiveOTP) {
		t.Fatalf("expected ErrNoActiveOTP, got %v", err)
	}
}

func TestRecoveryService_ResetPassword_ConsumesCode(t *testing.T) {
	repo := newStubUserRepo()
	svc, mailer := newRecoveryService(repo)
	u := seedRecoverable(t, repo, "0342000005", "mona@example.com")

	if _, err := svc.ForgotPassword(context.Background(), "0342000005"); err != nil {
		t.Fatalf("forgot password failed: %v", err)
	}
	code := mailer.lastCode(t)

	err := svc.ResetPassword(context.Background(), ports.ResetPasswordInput{
		PhoneNumber: "0342000005", OTP: code, NewPassword: "reset-pass",
	})
	if err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	stored := repo.byID[u.ID]
	if stored.OTP != "" {
		t.Fatalf("code must be consumed by a successful reset")
	}
	if !password.Verify("reset-pass", stored.PasswordHash) {
		t.Fatalf("new password must verify")
	}
	if password.Verify("original", stored.PasswordHash) {
		t.Fatalf("old password must no longer verify")
	}

	// the consumed code is gone for good
	err = svc.ResetPassword(context.Background(), ports.ResetPasswordInput{
		PhoneNumber: "0342000005", OTP: code, NewPassword: "again",
	})
	if !errors.Is(err, domain.ErrNoActiveOTP) {
		t.Fatalf("expected ErrNoActiveOTP after consumption, got %v", err)
	}
}

func TestRecoveryService_ResetPassword_MismatchLeavesCodeUsable(t *testing.T) {
	repo := newStubUserRepo()
	svc, mailer := newRecoveryService(repo)
	u := seedRecoverable(t, repo, "0342000006", "nina@example.com")

	if _, err := svc.ForgotPassword(context.Background(), "0342000006"); err != nil {
		t.Fatalf("forgot password failed: %v", err)
	}
	code := mailer.lastCode(t)

	err := svc.ResetPassword(context.Background(), ports.ResetPasswordInput{
		PhoneNumber: "0342000006", OTP: "999999", NewPassword: "nope",
	})
	if !errors.Is(err, domain.ErrOTPMismatch) {
		t.Fatalf("expected ErrOTPMismatch, got %v", err)
	}
	if !password.Verify("original", repo.byID[u.ID].PasswordHash) {
		t.Fatalf("password must be untouched on mismatch")
	}
	if err := svc.VerifyOTP(context.Background(), "0342000006", code); err != nil {
		t.Fatalf("code should still be usable after a mismatch: %v", err)
	}
}

func TestRecoveryService_ReissueOverwritesPreviousCode(t *testing.T) {
	repo := newStubUserRepo()
	svc, mailer := newRecoveryService(repo)
	seedRecoverable(t, repo, "0342000007", "omar@example.com")

	if _, err := svc.ForgotPassword(context.Background(), "0342000007"); err != nil {
		t.Fatalf("first issue failed: %v", err)
	}
	first := mailer.lastCode(t)

	if _, err := svc.ForgotPassword(context.Background(), "0342000007"); err != nil {
		t.Fatalf("second issue failed: %v", err)
	}
	second := mailer.lastCode(t)

	if err := svc.VerifyOTP(context.Background(), "0342000007", second); err != nil {
		t.Fatalf("latest code rejected: %v", err)
	}
	if first != second {
		if err := svc.VerifyOTP(context.Background(), "0342000007", first); !errors.Is(err, domain.ErrOTPMismatch) {
			t.Fatalf("superseded code should be rejected, got %v", err)
		}
	}
}

func TestMaskEmail(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"a@x.com", "a@x.com"},
		{"ab@x.com", "ab@x.com"},
		{"abc@x.com", "**c@x.com"},
		{"abcd@x.com", "**cd@x.com"},
		{"abcde@x.com", "*bcde@x.com"},
		{"abcdef@x.com", "**cdef@x.com"},
		{"longlocalpart@example.org", "*********part@example.org"},
		{"no-at-sign", "no-at-sign"},
	}
	for _, tc := range cases {
		if got := MaskEmail(tc.in); got != tc.want {
			t.Errorf("MaskEmail(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
