package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/urep/registration-api/internal/application/formfield"
	"github.com/urep/registration-api/internal/domain"
	"github.com/urep/registration-api/internal/pkg/validate"
)

// FormFieldHandler handles dynamic registration form endpoints.
type FormFieldHandler struct {
	svc formfield.Service
}

func NewFormFieldHandler(svc formfield.Service) *FormFieldHandler {
	return &FormFieldHandler{svc: svc}
}

// CreateForm creates all fields of a programme's registration form in bulk.
func (h *FormFieldHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	fields, err := h.svc.CreateForm(r.Context(), &req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, fields)
}

func (h *FormFieldHandler) ListByProgramme(w http.ResponseWriter, r *http.Request) {
	fields, err := h.svc.ListByProgramme(r.Context(), chi.URLParam(r, "programmeID"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fields)
}

func (h *FormFieldHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateFormFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	f, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (h *FormFieldHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "form field deleted"})
}
