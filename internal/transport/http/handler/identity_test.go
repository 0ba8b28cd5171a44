package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urep/registration-api/internal/domain"
)

type stubIdentityService struct {
	payload *domain.IdentityPayload
	err     error
	gotNIN  string
}

func (s *stubIdentityService) VerifyNIN(_ context.Context, nin string) (*domain.IdentityPayload, error) {
	s.gotNIN = nin
	return s.payload, s.err
}

func newVerifyRequest(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/v1/nin/verify", strings.NewReader(body))
}

func TestIdentityVerify(t *testing.T) {
	t.Run("malformed body", func(t *testing.T) {
		h := NewIdentityHandler(&stubIdentityService{})
		rr := httptest.NewRecorder()
		h.Verify(rr, newVerifyRequest("{not json"))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("nin must be 11 digits", func(t *testing.T) {
		stub := &stubIdentityService{}
		h := NewIdentityHandler(stub)
		rr := httptest.NewRecorder()
		h.Verify(rr, newVerifyRequest(`{"nin":"123"}`))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Empty(t, stub.gotNIN)
	})

	t.Run("provider payload passes through verbatim", func(t *testing.T) {
		raw := `{"id":"42","firstname":"Ada","lastname":"Obi","nin":"12345678901","extra_field":"kept"}`
		stub := &stubIdentityService{
			payload: &domain.IdentityPayload{NIN: "12345678901", Raw: json.RawMessage(raw)},
		}
		h := NewIdentityHandler(stub)
		rr := httptest.NewRecorder()
		h.Verify(rr, newVerifyRequest(`{"nin":"12345678901"}`))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "12345678901", stub.gotNIN)
		assert.JSONEq(t, raw, rr.Body.String())
	})

	t.Run("not found maps to 404 with provider message", func(t *testing.T) {
		stub := &stubIdentityService{
			err: domain.E(domain.ErrNotFound, "NIN not found or details do not match"),
		}
		h := NewIdentityHandler(stub)
		rr := httptest.NewRecorder()
		h.Verify(rr, newVerifyRequest(`{"nin":"12345678901"}`))

		assert.Equal(t, http.StatusNotFound, rr.Code)
		var env MessageEnvelope
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
		assert.Equal(t, "NIN not found or details do not match", env.Error)
	})

	t.Run("timeout maps to 500 with curated message", func(t *testing.T) {
		stub := &stubIdentityService{
			err: domain.E(domain.ErrTimeout, "Verification request timed out"),
		}
		h := NewIdentityHandler(stub)
		rr := httptest.NewRecorder()
		h.Verify(rr, newVerifyRequest(`{"nin":"12345678901"}`))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		var env MessageEnvelope
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
		assert.Equal(t, "Verification request timed out", env.Error)
	})

	t.Run("provider outage maps to 500", func(t *testing.T) {
		stub := &stubIdentityService{
			err: domain.E(domain.ErrUnavailable, "Unable to connect to verification service"),
		}
		h := NewIdentityHandler(stub)
		rr := httptest.NewRecorder()
		h.Verify(rr, newVerifyRequest(`{"nin":"12345678901"}`))
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
