package domain

import (
	"errors"
	"time"
)

const (
	RoleEmployee = "EMPLOYEE"
	RoleAdmin    = "ADMIN"
)

// Validation / registration errors.
var ErrInvalidRole = errors.New("invalid role")
var ErrInvalidEmail = errors.New("invalid email")
var ErrPhoneTaken = errors.New("phone number already registered")
var ErrEmailVerification = errors.New("email verification error")

// ErrVerifierDegraded signals that the external verification service answered
// with a retryable status; callers fall back to the local format check.
var ErrVerifierDegraded = errors.New("email verification service degraded")

// Authentication / authorization errors.
var ErrInvalidCredentials = errors.New("invalid username or password")
var ErrWrongRole = errors.New("wrong role for this access level")
var ErrIncorrectPassword = errors.New("incorrect password")
var ErrUnauthorized = errors.New("not authorized to delete this user")

// Lookup errors.
var ErrUserNotFound = errors.New("user not found")
var ErrTargetNotFound = errors.New("user to be deleted not found")

// Recovery errors.
var ErrNoActiveOTP = errors.New("no active otp")
var ErrOTPMismatch = errors.New("phone number or otp is incorrect")

// ValidRole reports whether role is one of the two known roles.
func ValidRole(role string) bool {
	return role == RoleEmployee || role == RoleAdmin
}

// User is the identity record persisted in the credential store.
// PasswordHash and OTP only ever hold bcrypt digests; an empty OTP string,
// not absence, is the "no active recovery code" state.
type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Role         string    `json:"role"`
	PhoneNumber  string    `json:"phoneNumber"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstTime    bool      `json:"isFirstTime"`
	OTP          string    `json:"-"`
	JoinedOn     time.Time `json:"joinedOn"`
}

// HasActiveOTP reports whether a recovery code is currently set.
func (u *User) HasActiveOTP() bool {
	return u.OTP != ""
}

// CanDelete is the deletion authorization rule: an ADMIN may delete any
// non-ADMIN target; an EMPLOYEE may not delete anyone, including itself.
func CanDelete(actorRole, targetRole string) bool {
	return actorRole == RoleAdmin && targetRole != RoleAdmin
}
