package handler

import (
	"encoding/json"
	"net/http"

	"github.com/urep/registration-api/internal/application/otp"
	"github.com/urep/registration-api/internal/domain"
	"github.com/urep/registration-api/internal/pkg/phone"
	"github.com/urep/registration-api/internal/pkg/validate"
)

// OTPHandler handles OTP issuance and verification endpoints.
type OTPHandler struct {
	svc         otp.Service
	countryCode string
}

func NewOTPHandler(svc otp.Service, countryCode string) *OTPHandler {
	return &OTPHandler{svc: svc, countryCode: countryCode}
}

func (h *OTPHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req domain.SendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// The API accepts only the canonical form (country code + 10 digits);
	// normalization of looser formats happens where phones come from the
	// identity provider, not at this surface.
	if !phone.Valid(req.PhoneNumber, h.countryCode) {
		writeError(w, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	res, err := h.svc.SendOTP(r.Context(), req.PhoneNumber)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *OTPHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req domain.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if !phone.Valid(req.PhoneNumber, h.countryCode) {
		writeError(w, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	res, err := h.svc.VerifyOTP(r.Context(), req.PhoneNumber, req.OTP)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
