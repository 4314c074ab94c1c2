package ports

import "context"

type HealthStatus struct {
	Healthy  bool
	Database string
}

type HealthService interface {
	Check(ctx context.Context) HealthStatus
}
