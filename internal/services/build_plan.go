package services

import (
	"context"
	"fmt"

	"pallet-consolidation-service/internal/domain"
	"pallet-consolidation-service/internal/policy"
	"pallet-consolidation-service/internal/ports"
)

type BuildPlanRequest struct {
	ClientID          string
	Strategy          string
	CapacityPositions int // 0 keeps the client default
}

// BuildPlan runs the full planning pipeline for one client: resolve the
// client policy, load demand, consolidate pickings onto physical pallets
// and hand the pallet list to the selected assignment engine.
//
// Policy resolution failures abort before any packing starts; unpackable
// fragments are excluded individually and surfaced through the plan's
// unassigned list.
func BuildPlan(
	ctx context.Context,
	req BuildPlanRequest,
	orders ports.OrderLineRepository,
	pol *policy.Policy,
) (*domain.Plan, error) {
	cfg, err := pol.Resolve(req.ClientID)
	if err != nil {
		return nil, fmt.Errorf("build plan: resolve client: %w", err)
	}
	if req.CapacityPositions > 0 {
		cfg.DefaultCapacityPositions = req.CapacityPositions
	}

	engine, err := NewEngine(req.Strategy)
	if err != nil {
		return nil, fmt.Errorf("build plan: %w", err)
	}

	lines, err := orders.ListOrderLines(ctx, req.ClientID)
	if err != nil {
		return nil, fmt.Errorf("build plan: list order lines: %w", err)
	}

	consolidated, err := Consolidate(ctx, lines, cfg)
	if err != nil {
		return nil, fmt.Errorf("build plan: consolidate: %w", err)
	}

	plan, err := engine.Assign(ctx, consolidated.Pallets, cfg)
	if err != nil {
		return nil, fmt.Errorf("build plan: assign trucks: %w", err)
	}

	plan.Unassigned = append(plan.Unassigned, consolidated.Unassigned...)
	return plan, nil
}
