package handler

import "time"

// joinedOnLayout renders joinedOn as a calendar date.
const joinedOnLayout = "2006-01-02"

// messageResponse is the envelope for endpoints that only report an outcome.
type messageResponse struct {
	Message string `json:"message"`
}

// --- Request types ---

type registerRequest struct {
	FirstName   string `json:"firstName"   validate:"required"`
	LastName    string `json:"lastName"    validate:"required"`
	Role        string `json:"role"        validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Email       string `json:"email"       validate:"required"`
}

type loginRequest struct {
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Password    string `json:"password"    validate:"required"`
	Role        string `json:"role"        validate:"required"`
}

type editProfileRequest struct {
	FirstName   string `json:"firstName"   validate:"required"`
	LastName    string `json:"lastName"    validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Email       string `json:"email"       validate:"required"`
}

type changePasswordRequest struct {
	ID          string `json:"id"      validate:"required"`
	OldPassword string `json:"oldPass" validate:"required"`
	NewPassword string `json:"newPass" validate:"required"`
}

type resetPasswordRequest struct {
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	OTP         string `json:"otp"         validate:"required"`
	NewPassword string `json:"newPass"     validate:"required"`
}

// --- Response types ---

// userSummaryResponse is the list projection; it intentionally omits the
// first-time flag.
type userSummaryResponse struct {
	ID          string `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Role        string `json:"role"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	JoinedOn    string `json:"joinedOn"`
}

// userDetailResponse is the single-user projection, including the
// first-time flag.
type userDetailResponse struct {
	ID          string `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Role        string `json:"role"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	IsFirstTime bool   `json:"isFirstTime"`
	JoinedOn    string `json:"joinedOn"`
}

type loginResponse struct {
	Phone   string `json:"phone,omitempty"`
	Token   string `json:"token,omitempty"`
	Message string `json:"message"`
	// IsFirstTime is only present when credentials are correct but the
	// system-assigned password has not been changed yet.
	IsFirstTime *bool `json:"isFirstTime,omitempty"`
}

type forgotPasswordResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}

func formatJoinedOn(t time.Time) string {
	return t.Format(joinedOnLayout)
}
