package http

import (
	"net/http"
	"time"

	"github.com/survey/api/internal/core/ports"
)

type HealthHandler struct {
	health      ports.HealthService
	environment string
}

func NewHealthHandler(health ports.HealthService, environment string) *HealthHandler {
	return &HealthHandler{
		health:      health,
		environment: environment,
	}
}

type healthResponse struct {
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	Database    string `json:"database"`
	Environment string `json:"environment"`
}

// Check handles GET /health.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	status := h.health.Check(r.Context())

	body := healthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Database:    status.Database,
		Environment: h.environment,
	}
	if !status.Healthy {
		body.Status = "unhealthy"
	}

	writeJSON(w, http.StatusOK, body)
}
