package domain

// Deliverability classifications reported by the verification service.
const (
	Deliverable     = "DELIVERABLE"
	Undeliverable   = "UNDELIVERABLE"
	UnknownDelivery = "UNKNOWN"
)

// Flag is a boolean verdict paired with the service's explanatory text
// (e.g. {"value": true, "text": "TRUE"}).
type Flag struct {
	Value bool   `json:"value"`
	Text  string `json:"text"`
}

// EmailVerification is the structured report returned by the external
// email verification service for a single address.
type EmailVerification struct {
	Email             string `json:"email"`
	Autocorrect       string `json:"autocorrect"`
	Deliverability    string `json:"deliverability"`
	QualityScore      string `json:"quality_score"`
	IsValidFormat     Flag   `json:"is_valid_format"`
	IsFreeEmail       Flag   `json:"is_free_email"`
	IsDisposableEmail Flag   `json:"is_disposable_email"`
	IsRoleEmail       Flag   `json:"is_role_email"`
	IsCatchallEmail   Flag   `json:"is_catchall_email"`
	IsMxFound         Flag   `json:"is_mx_found"`
	IsSmtpValid       Flag   `json:"is_smtp_valid"`
}

// Rejects reports whether the verification report disqualifies the address.
// The grouping of the expression is load-bearing: UNKNOWN deliverability only
// rejects when the SMTP probe also failed, while UNDELIVERABLE, a disposable
// flag, or a bad format each reject on their own.
func (v *EmailVerification) Rejects() bool {
	return v.Deliverability == Undeliverable ||
		(v.Deliverability == UnknownDelivery && !v.IsSmtpValid.Value) ||
		v.IsDisposableEmail.Value ||
		!v.IsValidFormat.Value
}
