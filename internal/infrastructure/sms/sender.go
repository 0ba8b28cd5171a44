package sms

import (
	"context"
	"fmt"

	"github.com/urep/registration-api/internal/config"
)

// Sender dispatches an SMS to a destination phone number. Implementations
// must return an error carrying the HTTP status or network failure class so
// callers can log it; they must never block without a bound.
type Sender interface {
	Send(ctx context.Context, to, message string) error
}

// NewSender builds the configured SMS provider. On failure the Sender is a
// true nil interface, never a typed nil, so callers can compare against nil.
func NewSender(cfg *config.Config) (Sender, error) {
	switch cfg.SMSProvider {
	case "termii":
		s, err := NewTermiiSender(cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "sns":
		s, err := NewSNSSender(cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown SMS provider %q", cfg.SMSProvider)
	}
}
