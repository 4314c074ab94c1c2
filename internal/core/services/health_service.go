package services

import (
	"context"
	"time"

	"github.com/survey/api/internal/core/ports"
)

// Pinger is the slice of the database handle the health probe needs.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type healthService struct {
	db Pinger
}

func NewHealthService(db Pinger) ports.HealthService {
	return &healthService{
		db: db,
	}
}

func (s *healthService) Check(ctx context.Context) ports.HealthStatus {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(pingCtx); err != nil {
		return ports.HealthStatus{Healthy: false, Database: "disconnected"}
	}
	return ports.HealthStatus{Healthy: true, Database: "connected"}
}
