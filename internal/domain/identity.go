package domain

import "encoding/json"

// IdentityPayload is the verification result returned by the identity
// provider. Raw preserves the provider body verbatim for pass-through to the
// caller; the typed fields are parsed out of it for our own inspection.
type IdentityPayload struct {
	ID          string `json:"id"`
	FirstName   string `json:"firstname"`
	LastName    string `json:"lastname"`
	NIN         string `json:"nin"`
	Phone       string `json:"phone,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	Gender      string `json:"gender,omitempty"`

	Raw json.RawMessage `json:"-"`
}

// NINRequest is the caller-facing identity verification input.
type NINRequest struct {
	NIN string `json:"nin" validate:"required,len=11,numeric"`
}
