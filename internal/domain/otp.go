package domain

import "time"

// OTP lifecycle constants. Verification enforces expiry and the attempt cap
// itself; the store's sweeper is memory hygiene only.
const (
	OTPLength      = 6
	OTPTTL         = 10 * time.Minute
	OTPMaxAttempts = 3
	OTPSweepPeriod = 5 * time.Minute
)

// OTPRecord is the unit of truth for one phone number's pending OTP.
// Keyed by the full phone number (country code + 10 digits). At most one
// live record exists per phone; a new issuance overwrites the old record.
type OTPRecord struct {
	Code      string
	ExpiresAt time.Time
	Attempts  int
}

// Expired reports whether the record's TTL has elapsed at the given instant.
func (r *OTPRecord) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// OTPResult is the caller-facing outcome of issuance and verification.
// Code is only populated in development mode on issuance.
type OTPResult struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	PhoneNumber string `json:"phoneNumber"`
	Code        string `json:"otp,omitempty"`
}

type SendOTPRequest struct {
	PhoneNumber string `json:"phoneNumber" validate:"required"`
}

type VerifyOTPRequest struct {
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	OTP         string `json:"otp" validate:"required,len=6,numeric"`
}
