package services

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"pallet-consolidation-service/internal/domain"
	"pallet-consolidation-service/internal/policy"
	"pallet-consolidation-service/internal/ports"
)

// Assignment strategy names accepted by NewEngine.
const (
	StrategyBinPacking = "binpacking"
	StrategyVCU        = "vcu"
)

var ErrUnknownStrategy = errors.New("unknown strategy")

// NewEngine returns the assignment engine for a strategy name. An empty
// name selects bin packing.
func NewEngine(strategy string) (ports.AssignmentEngine, error) {
	switch strategy {
	case "", StrategyBinPacking:
		return &BinPackingEngine{}, nil
	case StrategyVCU:
		return &VCUEngine{}, nil
	default:
		return nil, fmt.Errorf("new engine: %w %q", ErrUnknownStrategy, strategy)
	}
}

// BinPackingEngine fills trucks route by route using first-fit on floor
// positions. It does not attempt global optimization; determinism and
// predictable fill order are preferred over optimality.
type BinPackingEngine struct{}

func (e *BinPackingEngine) Assign(
	ctx context.Context,
	pallets []*domain.PhysicalPallet,
	cfg policy.ClientConfig,
) (*domain.Plan, error) {
	return assignByRoute(ctx, pallets, cfg, func(t *domain.Truck, p *domain.PhysicalPallet) bool {
		return t.UsedPositions() < t.CapacityPositions
	})
}

// VCUEngine fills trucks like the bin-packing engine but additionally
// closes a truck once its weight or volume capacity would be exceeded,
// approximating a vehicle-capacity-utilization target per truck.
type VCUEngine struct{}

func (e *VCUEngine) Assign(
	ctx context.Context,
	pallets []*domain.PhysicalPallet,
	cfg policy.ClientConfig,
) (*domain.Plan, error) {
	return assignByRoute(ctx, pallets, cfg, func(t *domain.Truck, p *domain.PhysicalPallet) bool {
		if t.UsedPositions() >= t.CapacityPositions {
			return false
		}
		weight := p.TotalWeightKg()
		volume := p.TotalVolumeM3()
		for _, loaded := range t.Positions {
			weight = weight.Add(loaded.TotalWeightKg())
			volume = volume.Add(loaded.TotalVolumeM3())
		}
		return weight.LessThanOrEqual(cfg.MaxWeightKg) && volume.LessThanOrEqual(cfg.MaxVolumeM3)
	})
}

// assignByRoute groups pallets by their fragments' route, then places
// each pallet into the first open truck of that route accepted by fits,
// opening a new truck otherwise. Route groups are processed in sorted
// key order so identical inputs yield identical truck sequences.
func assignByRoute(
	ctx context.Context,
	pallets []*domain.PhysicalPallet,
	cfg policy.ClientConfig,
	fits func(*domain.Truck, *domain.PhysicalPallet) bool,
) (*domain.Plan, error) {
	plan := &domain.Plan{}

	grouped := map[string][]*domain.PhysicalPallet{}
	routes := map[string]domain.RouteKey{}
	for _, p := range pallets {
		if len(p.Fragments) == 0 {
			continue
		}
		// All fragments of one pallet share a route by construction.
		lead := p.Fragments[0]
		route := domain.NewRouteKey([]string{lead.DistributionCenter}, []string{lead.SalesChannel})
		key := route.Key()
		grouped[key] = append(grouped[key], p)
		routes[key] = route
	}

	keys := make([]string, 0, len(grouped))
	for k := range grouped {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	truckSeq := 0
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return nil, &domain.ComputationTimeoutError{Op: "assign trucks"}
		}

		route := routes[key]
		routeType := cfg.RouteTypeFor(route.DistributionCenters)

		var open []*domain.Truck
		for _, p := range grouped[key] {
			placed := false
			for _, t := range open {
				if fits(t, p) {
					if err := t.AddPallet(p); err != nil {
						return nil, fmt.Errorf("assign trucks: truck %s: %w", t.ID, err)
					}
					placed = true
					break
				}
			}
			if placed {
				continue
			}

			truckSeq++
			t := domain.NewTruck(fmt.Sprintf("truck-%03d", truckSeq), route, routeType, cfg.DefaultCapacityPositions)
			if !fits(t, p) {
				// The pallet does not fit even an empty truck (e.g. a
				// single pallet over the weight cap); report it instead
				// of opening a truck it cannot board.
				truckSeq--
				for _, f := range p.Fragments {
					plan.Unassigned = append(plan.Unassigned, domain.UnassignedFragment{
						Fragment: f,
						Reason:   domain.ReasonNoTruckCapacity,
					})
				}
				continue
			}
			if err := t.AddPallet(p); err != nil {
				return nil, fmt.Errorf("assign trucks: truck %s: %w", t.ID, err)
			}
			open = append(open, t)
		}
		plan.Trucks = append(plan.Trucks, open...)
	}

	return plan, nil
}
