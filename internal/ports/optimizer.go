package ports

import (
	"context"
	"dfc-optim-service/internal/domain"
)

// Contract for solving a flat vehicle-routing request.
type Optimizer interface {
	// Issue a single optimization request and return its routes.
	Optimize(ctx context.Context, req domain.Request) (*domain.Result, error)
}
