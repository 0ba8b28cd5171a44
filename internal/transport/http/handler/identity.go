package handler

import (
	"encoding/json"
	"net/http"

	"github.com/urep/registration-api/internal/application/identity"
	"github.com/urep/registration-api/internal/domain"
	"github.com/urep/registration-api/internal/pkg/validate"
)

// IdentityHandler handles NIN verification endpoints.
type IdentityHandler struct {
	svc identity.Service
}

func NewIdentityHandler(svc identity.Service) *IdentityHandler { return &IdentityHandler{svc: svc} }

// Verify proxies the provider's verification payload back to the caller
// verbatim on success.
func (h *IdentityHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req domain.NINRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	payload, err := h.svc.VerifyNIN(r.Context(), req.NIN)
	if err != nil {
		httpError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if len(payload.Raw) > 0 {
		_, _ = w.Write(payload.Raw)
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}
