package ports

import (
	"context"

	"pallet-consolidation-service/internal/policy"
)

// Port: a boundary for loading client configurations from a data source.
type ClientConfigRepository interface {
	// Retrieve all configured client policies.
	ListClientConfigs(ctx context.Context) ([]policy.ClientConfig, error)
}
