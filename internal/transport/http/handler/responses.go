package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/urep/registration-api/internal/application/response"
	"github.com/urep/registration-api/internal/domain"
	"github.com/urep/registration-api/internal/pkg/validate"
)

// ResponseHandler handles registration submission endpoints.
type ResponseHandler struct {
	svc response.Service
}

func NewResponseHandler(svc response.Service) *ResponseHandler {
	return &ResponseHandler{svc: svc}
}

// Submit registers a user for a programme with their form answers.
func (h *ResponseHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.svc.Submit(r.Context(), &req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *ResponseHandler) GetRegistration(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.GetRegistration(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *ResponseHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	regs, err := h.svc.ListByUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, regs)
}
