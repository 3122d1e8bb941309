package ports

import (
	"context"
	"load-route-service/internal/domain"
)

// Port: a boundary for retrieving the Load set of one problem instance.
type LoadRepository interface {
	// Retrieve all loads to be routed, in source order.
	ListLoads(ctx context.Context) ([]domain.Load, error)
}
