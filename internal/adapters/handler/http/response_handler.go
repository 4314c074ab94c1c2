package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/survey/api/internal/core/ports"
	"github.com/survey/api/internal/validation"
)

type ResponseHandler struct {
	service        ports.ResponseService
	exposeInternal bool
}

func NewResponseHandler(service ports.ResponseService, exposeInternal bool) *ResponseHandler {
	return &ResponseHandler{
		service:        service,
		exposeInternal: exposeInternal,
	}
}

// Create handles POST /api/responses.
func (h *ResponseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req validation.SubmitRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Normalize()
	if verrs := validation.ValidateSubmit(&req); verrs != nil {
		writeValidationErrors(w, verrs)
		return
	}

	input := ports.SubmitInput{
		Email:            req.Email,
		Motivation:       req.Motivation,
		FavoriteLanguage: req.FavoriteLanguage,
	}

	resp, err := h.service.Submit(r.Context(), input)
	if err != nil {
		writeError(w, r, err, h.exposeInternal)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// Count handles GET /api/responses/count.
func (h *ResponseHandler) Count(w http.ResponseWriter, r *http.Request) {
	total, err := h.service.Count(r.Context())
	if err != nil {
		writeError(w, r, err, h.exposeInternal)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"total": total})
}

// Recent handles GET /api/responses/recent.
func (h *ResponseHandler) Recent(w http.ResponseWriter, r *http.Request) {
	responses, err := h.service.Recent(r.Context())
	if err != nil {
		writeError(w, r, err, h.exposeInternal)
		return
	}

	writeJSON(w, http.StatusOK, emptyIfNil(responses))
}

// Stats handles GET /api/responses/stats.
func (h *ResponseHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		writeError(w, r, err, h.exposeInternal)
		return
	}

	writeJSON(w, http.StatusOK, emptyIfNil(stats))
}

// CheckEmail handles GET /api/responses/check/{email}.
func (h *ResponseHandler) CheckEmail(w http.ResponseWriter, r *http.Request) {
	email, ok := h.emailParam(w, r)
	if !ok {
		return
	}

	exists, err := h.service.CheckEmail(r.Context(), email)
	if err != nil {
		writeError(w, r, err, h.exposeInternal)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"exists": exists})
}

// GetByEmail handles GET /api/responses/{email}.
func (h *ResponseHandler) GetByEmail(w http.ResponseWriter, r *http.Request) {
	email, ok := h.emailParam(w, r)
	if !ok {
		return
	}

	resp, err := h.service.GetByEmail(r.Context(), email)
	if err != nil {
		writeError(w, r, err, h.exposeInternal)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// ListAll handles GET /api/responses.
func (h *ResponseHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	responses, err := h.service.ListAll(r.Context())
	if err != nil {
		writeError(w, r, err, h.exposeInternal)
		return
	}

	writeJSON(w, http.StatusOK, emptyIfNil(responses))
}

// emailParam extracts and validates the email path parameter shared by
// the lookup and existence endpoints.
func (h *ResponseHandler) emailParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	email := validation.NormalizeEmail(chi.URLParam(r, "email"))
	if verrs := validation.ValidateEmail(email); verrs != nil {
		writeValidationErrors(w, verrs)
		return "", false
	}
	return email, true
}

// emptyIfNil keeps list endpoints returning [] instead of null when
// there are no rows yet.
func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
