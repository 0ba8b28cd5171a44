// Package qoreid talks to the QoreID identity verification API. It owns the
// cached bearer token used to authenticate lookups.
package qoreid

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"regexp"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/urep/registration-api/internal/config"
	"github.com/urep/registration-api/internal/domain"
)

const (
	// tokenSafetyMargin is subtracted from the provider-declared validity so
	// a token is never presented right at its expiry instant.
	tokenSafetyMargin = 60 * time.Second

	tokenTimeout  = 10 * time.Second
	lookupTimeout = 15 * time.Second
)

var ninPattern = regexp.MustCompile(`^\d{11}$`)

type tokenResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"` // seconds
}

// Client verifies NINs against QoreID. It caches the access token until
// shortly before expiry so repeated lookups don't re-authenticate.
type Client struct {
	http         *resty.Client
	baseURL      string
	tokenURL     string
	clientID     string
	clientSecret string

	mu             sync.Mutex
	token          string
	tokenExpiresAt time.Time

	now func() time.Time
}

// NewClient builds a QoreID client. Missing credentials are a configuration
// error surfaced at construction, not a per-request outcome.
func NewClient(cfg *config.Config) (*Client, error) {
	if cfg.QoreIDClientID == "" || cfg.QoreIDClientSecret == "" {
		return nil, errors.New("QoreID client ID and secret are required")
	}
	return &Client{
		http:         resty.New().SetHeader("Content-Type", "application/json"),
		baseURL:      cfg.QoreIDBaseURL,
		tokenURL:     cfg.QoreIDTokenURL,
		clientID:     cfg.QoreIDClientID,
		clientSecret: cfg.QoreIDClientSecret,
		now:          time.Now,
	}, nil
}

// Verify looks up an 11-digit NIN and returns the provider payload.
// Provider and transport failures are translated into the domain error
// taxonomy; raw transport errors never escape this package.
func (c *Client) Verify(ctx context.Context, nin string) (*domain.IdentityPayload, error) {
	if !ninPattern.MatchString(nin) {
		return nil, domain.E(domain.ErrBadRequest, "Invalid NIN format. Must be 11 digits.")
	}

	token, err := c.getToken(ctx)
	if err != nil {
		return nil, err
	}

	lookupCtx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	resp, err := c.http.R().
		SetContext(lookupCtx).
		SetAuthToken(token).
		Post(c.baseURL + "/nin/" + nin)
	if err != nil {
		return nil, classifyNetErr(err)
	}
	if resp.IsError() {
		return nil, c.mapLookupStatus(resp, nin)
	}

	payload := &domain.IdentityPayload{Raw: append([]byte(nil), resp.Body()...)}
	if err := json.Unmarshal(resp.Body(), payload); err != nil {
		return nil, domain.E(domain.ErrUnavailable, "Identity verification service error")
	}
	slog.Info("NIN verification successful", "nin", nin)
	return payload, nil
}

func (c *Client) mapLookupStatus(resp *resty.Response, nin string) error {
	status := resp.StatusCode()
	slog.Error("NIN verification failed", "nin", nin, "status", status, "body", resp.String())

	switch status {
	case http.StatusBadRequest:
		msg := "Invalid NIN verification request"
		var body struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(resp.Body(), &body) == nil && body.Message != "" {
			msg = body.Message
		}
		return domain.E(domain.ErrBadRequest, msg)
	case http.StatusNotFound:
		return domain.E(domain.ErrNotFound, "NIN not found or details do not match")
	case http.StatusUnauthorized:
		// The cached credential was rejected upstream. Not transient — the
		// configured client ID/secret need attention.
		slog.Error("QoreID authentication failed")
		return domain.E(domain.ErrUnavailable, "Identity verification service unavailable")
	case http.StatusTooManyRequests:
		return domain.E(domain.ErrRateLimited, "Too many verification attempts. Please try again later.")
	default:
		return domain.E(domain.ErrUnavailable, "Identity verification service error")
	}
}

// getToken returns the cached access token, refreshing it when absent or
// within the safety margin of expiry. One upstream attempt per call, no
// retries; the mutex also serialises concurrent refreshes.
func (c *Client) getToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if c.token != "" && now.Before(c.tokenExpiresAt) {
		return c.token, nil
	}

	tokenCtx, cancel := context.WithTimeout(ctx, tokenTimeout)
	defer cancel()

	var body tokenResponse
	resp, err := c.http.R().
		SetContext(tokenCtx).
		SetBody(map[string]string{"clientId": c.clientID, "secret": c.clientSecret}).
		SetResult(&body).
		Post(c.tokenURL)
	if err != nil {
		return "", classifyNetErr(err)
	}
	if resp.IsError() {
		slog.Error("failed to retrieve QoreID token", "status", resp.StatusCode(), "body", resp.String())
		return "", domain.E(domain.ErrUnavailable, "Identity verification service unavailable")
	}
	if body.AccessToken == "" || body.ExpiresIn <= 0 {
		slog.Error("invalid QoreID token response format")
		return "", domain.E(domain.ErrUnavailable, "Identity verification service unavailable")
	}

	validity := time.Duration(body.ExpiresIn) * time.Second
	if validity > tokenSafetyMargin {
		c.token = body.AccessToken
		c.tokenExpiresAt = now.Add(validity - tokenSafetyMargin)
	} else {
		// Shorter-lived than the margin: usable once, not worth caching.
		c.token = ""
	}
	return body.AccessToken, nil
}

func classifyNetErr(err error) error {
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return domain.E(domain.ErrTimeout, "Verification request timed out")
	}
	return domain.E(domain.ErrUnavailable, "Unable to connect to verification service")
}
