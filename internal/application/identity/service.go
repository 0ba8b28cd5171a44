package identity

import (
	"context"
	"log/slog"

	"github.com/urep/registration-api/internal/domain"
	"github.com/urep/registration-api/internal/pkg/phone"
)

// Verifier is the identity-provider client the service depends on.
type Verifier interface {
	Verify(ctx context.Context, nin string) (*domain.IdentityPayload, error)
}

// OTPIssuer issues an OTP to a canonical phone number.
type OTPIssuer interface {
	SendOTP(ctx context.Context, phoneNumber string) (*domain.OTPResult, error)
}

type Service interface {
	VerifyNIN(ctx context.Context, nin string) (*domain.IdentityPayload, error)
}

type service struct {
	verifier    Verifier
	otp         OTPIssuer
	countryCode string
}

func NewService(verifier Verifier, otp OTPIssuer, countryCode string) Service {
	return &service{verifier: verifier, otp: otp, countryCode: countryCode}
}

// VerifyNIN verifies the NIN upstream and, when the payload carries a usable
// contact phone, kicks off OTP delivery to it. The OTP leg is best effort:
// neither a malformed phone nor a delivery failure changes the verification
// outcome.
func (s *service) VerifyNIN(ctx context.Context, nin string) (*domain.IdentityPayload, error) {
	payload, err := s.verifier.Verify(ctx, nin)
	if err != nil {
		return nil, err
	}

	if payload.Phone == "" {
		return payload, nil
	}

	normalized, err := phone.Normalize(payload.Phone, s.countryCode)
	if err != nil {
		slog.Warn("could not normalize phone from identity payload", "nin", nin, "err", err)
		return payload, nil
	}

	if _, err := s.otp.SendOTP(ctx, normalized); err != nil {
		slog.Error("OTP dispatch after NIN verification failed", "phone", normalized, "err", err)
	}
	return payload, nil
}
