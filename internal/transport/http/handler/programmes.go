package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/urep/registration-api/internal/application/programme"
	"github.com/urep/registration-api/internal/domain"
	"github.com/urep/registration-api/internal/pkg/validate"
)

// ProgrammeHandler handles programme CRUD endpoints.
type ProgrammeHandler struct {
	svc programme.Service
}

func NewProgrammeHandler(svc programme.Service) *ProgrammeHandler {
	return &ProgrammeHandler{svc: svc}
}

func (h *ProgrammeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateProgrammeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.svc.Create(r.Context(), &req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *ProgrammeHandler) List(w http.ResponseWriter, r *http.Request) {
	programmes, err := h.svc.List(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, programmes)
}

// ListActive returns programmes open for registration today.
func (h *ProgrammeHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	programmes, err := h.svc.ListActive(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, programmes)
}

func (h *ProgrammeHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProgrammeHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateProgrammeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProgrammeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "programme deleted"})
}
