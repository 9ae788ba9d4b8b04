package ports

import (
	"context"

	"pallet-consolidation-service/internal/domain"
	"pallet-consolidation-service/internal/policy"
)

// Contract for placing physical pallets into truck positions.
//
// An engine must preserve pallet integrity (never split or merge
// pallets) and report anything it could not place through the plan's
// unassigned list. Implementations are interchangeable strategies.
type AssignmentEngine interface {
	// Produce a truck plan from the consolidated pallet list.
	Assign(ctx context.Context, pallets []*domain.PhysicalPallet, cfg policy.ClientConfig) (*domain.Plan, error)
}
