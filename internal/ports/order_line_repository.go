package ports

import (
	"context"

	"pallet-consolidation-service/internal/domain"
)

// Port: a boundary for retrieving order line demand from a data source.
type OrderLineRepository interface {
	// Retrieve the order lines of one client's current demand.
	ListOrderLines(ctx context.Context, clientID string) ([]*domain.OrderLine, error)
}
