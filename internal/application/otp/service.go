package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/urep/registration-api/internal/domain"
	"github.com/urep/registration-api/internal/infrastructure/otpstore"
	"github.com/urep/registration-api/internal/infrastructure/sms"
	"github.com/urep/registration-api/internal/pkg/phone"
)

const smsTemplate = "Your OTP for your Urep registration is: %s"

type Service interface {
	SendOTP(ctx context.Context, phoneNumber string) (*domain.OTPResult, error)
	VerifyOTP(ctx context.Context, phoneNumber, code string) (*domain.OTPResult, error)
}

type service struct {
	store       *otpstore.Store
	sender      sms.Sender
	countryCode string
	devMode     bool
	now         func() time.Time
}

// NewService builds the OTP issuance/verification service. In devMode the
// generated code is returned in the response and no SMS is dispatched.
func NewService(store *otpstore.Store, sender sms.Sender, countryCode string, devMode bool) Service {
	return &service{
		store:       store,
		sender:      sender,
		countryCode: countryCode,
		devMode:     devMode,
		now:         time.Now,
	}
}

// SendOTP generates a fresh 6-digit code for the phone number, replacing any
// pending one, and dispatches it through the SMS gateway. A dispatch failure
// rolls the record back so no undeliverable code stays live.
func (s *service) SendOTP(ctx context.Context, phoneNumber string) (*domain.OTPResult, error) {
	if !phone.Valid(phoneNumber, s.countryCode) {
		return nil, domain.E(domain.ErrBadRequest, "Invalid phone number format")
	}

	// Outside dev mode an OTP without a gateway is undeliverable; refuse
	// before a record is stored rather than panic at dispatch.
	if !s.devMode && s.sender == nil {
		slog.Error("SMS sender not configured, cannot issue OTP")
		return nil, domain.E(domain.ErrUnavailable, "Unable to send OTP. Please try again later.")
	}

	code, err := generateCode()
	if err != nil {
		return nil, err
	}

	s.store.Put(phoneNumber, domain.OTPRecord{
		Code:      code,
		ExpiresAt: s.now().Add(domain.OTPTTL),
		Attempts:  0,
	})

	if s.devMode {
		slog.Info("[DEV MODE] OTP generated, skipping SMS dispatch", "phone", phoneNumber, "otp", code)
		return &domain.OTPResult{
			Success:     true,
			Message:     "OTP generated successfully",
			PhoneNumber: phoneNumber,
			Code:        code,
		}, nil
	}

	if err := s.sender.Send(ctx, phoneNumber, fmt.Sprintf(smsTemplate, code)); err != nil {
		s.store.Delete(phoneNumber)
		slog.Error("SMS dispatch failed", "phone", phoneNumber, "err", err)
		return nil, domain.E(domain.ErrUnavailable, "Unable to send OTP. Please try again later.")
	}

	slog.Info("SMS sent successfully", "phone", phoneNumber)
	return &domain.OTPResult{
		Success:     true,
		Message:     "OTP sent successfully",
		PhoneNumber: phoneNumber,
	}, nil
}

// VerifyOTP runs the per-phone state machine. Check order matters: a record
// that is both expired and attempt-exhausted reports "expired". Terminal
// outcomes (match, expiry, exhaustion) delete the record; a mismatch keeps it
// with the consumed attempt.
func (s *service) VerifyOTP(_ context.Context, phoneNumber, code string) (*domain.OTPResult, error) {
	rec, ok := s.store.Get(phoneNumber)
	if !ok {
		return nil, domain.E(domain.ErrBadRequest, "No OTP found for this phone number. Please request a new OTP.")
	}

	if rec.Expired(s.now()) {
		s.store.Delete(phoneNumber)
		return nil, domain.E(domain.ErrUnauthorized, "OTP has expired. Please request a new OTP.")
	}

	if rec.Attempts >= domain.OTPMaxAttempts {
		s.store.Delete(phoneNumber)
		return nil, domain.E(domain.ErrUnauthorized, "Maximum verification attempts exceeded. Please request a new OTP.")
	}

	attempts, ok := s.store.IncrementAttempts(phoneNumber)
	if !ok {
		// Deleted between the read and the increment (sweeper or concurrent
		// terminal outcome).
		return nil, domain.E(domain.ErrBadRequest, "No OTP found for this phone number. Please request a new OTP.")
	}

	if rec.Code != code {
		slog.Warn("failed OTP verification attempt",
			"phone", phoneNumber, "attempt", attempts, "max", domain.OTPMaxAttempts)
		return nil, domain.E(domain.ErrUnauthorized,
			fmt.Sprintf("Invalid OTP. %d attempts remaining.", domain.OTPMaxAttempts-attempts))
	}

	s.store.Delete(phoneNumber)
	slog.Info("OTP verified successfully", "phone", phoneNumber)
	return &domain.OTPResult{
		Success:     true,
		Message:     "OTP verified successfully",
		PhoneNumber: phoneNumber,
	}, nil
}

// generateCode draws six decimal digits uniformly from [0, 999999],
// zero-padded, so leading zeros are as likely as any other digit.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("generate OTP: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
