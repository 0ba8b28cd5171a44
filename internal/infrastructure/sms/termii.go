package sms

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/urep/registration-api/internal/config"
)

// TermiiSender sends SMS through the Termii HTTP API.
type TermiiSender struct {
	client   *resty.Client
	apiKey   string
	senderID string
}

type termiiSendRequest struct {
	APIKey  string `json:"api_key"`
	To      string `json:"to"`
	From    string `json:"from"`
	Channel string `json:"channel"`
	Type    string `json:"type"`
	SMS     string `json:"sms"`
}

func NewTermiiSender(cfg *config.Config) (*TermiiSender, error) {
	if cfg.TermiiAPIKey == "" || cfg.TermiiSenderID == "" {
		return nil, errors.New("termii API key and sender ID are required")
	}
	c := resty.New().
		SetBaseURL(cfg.TermiiBaseURL).
		SetTimeout(15 * time.Second).
		SetHeader("Content-Type", "application/json")
	return &TermiiSender{client: c, apiKey: cfg.TermiiAPIKey, senderID: cfg.TermiiSenderID}, nil
}

func (s *TermiiSender) Send(ctx context.Context, to, message string) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(termiiSendRequest{
			APIKey:  s.apiKey,
			To:      to,
			From:    s.senderID,
			Channel: "generic",
			Type:    "plain",
			SMS:     message,
		}).
		Post("/api/sms/send")
	if err != nil {
		return fmt.Errorf("termii request: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("termii returned %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}
