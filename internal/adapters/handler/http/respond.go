package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/survey/api/internal/core/domain"
	"github.com/survey/api/internal/validation"
)

// maxBodyBytes caps JSON request bodies at 10KB, matching what a
// survey submission can plausibly carry.
const maxBodyBytes = 10 << 10

type errorResponse struct {
	Error   string                  `json:"error"`
	Details []validation.FieldError `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeErrorMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeValidationErrors(w http.ResponseWriter, details validation.Errors) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid input", Details: details})
}

// writeError maps domain failures to status codes. Anything outside the
// domain taxonomy becomes a 500 whose detail is only exposed when the
// server runs in development mode.
func writeError(w http.ResponseWriter, r *http.Request, err error, exposeInternal bool) {
	var domErr *domain.Error
	if errors.As(err, &domErr) {
		writeErrorMessage(w, domErr.HTTPStatus(), domErr.Message)
		return
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		writeValidationErrors(w, verrs)
		return
	}

	slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)

	message := "internal server error"
	if exposeInternal {
		message = err.Error()
	}
	writeErrorMessage(w, http.StatusInternalServerError, message)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}
