package services

import (
	"pallet-consolidation-service/internal/domain"
	"pallet-consolidation-service/internal/policy"

	"github.com/google/uuid"
)

// Interactive operations on a committed plan. Each operation is a pure
// transformation: it works on a deep copy and either returns the fully
// applied new snapshot or an error with the input plan untouched. The
// caller keeps previous snapshots for undo/reset.

// MoveOrders moves the selected fragments into the target truck,
// re-running first-fit insertion against that truck's pallets. An empty
// target ID moves the fragments to the unassigned pool. Emptied pallets
// are deleted, freeing their positions.
func MoveOrders(
	plan *domain.Plan,
	fragmentIDs []string,
	targetTruckID string,
	cfg policy.ClientConfig,
) (*domain.Plan, error) {
	next := plan.Clone()

	var target *domain.Truck
	if targetTruckID != "" {
		t, ok := next.TruckByID(targetTruckID)
		if !ok {
			return nil, &domain.UnknownTruckError{TruckID: targetTruckID}
		}
		target = t
	}

	// Validate before touching anything: every fragment must exist and
	// be route-compatible with the target truck.
	for _, id := range fragmentIDs {
		f, found := lookupFragment(next, id)
		if !found {
			return nil, &domain.UnknownFragmentError{FragmentID: id}
		}
		if target != nil && !target.Route.Contains(f.DistributionCenter, f.SalesChannel) {
			return nil, &domain.IncompatibleRouteError{FragmentID: id, TruckID: targetTruckID}
		}
	}

	moved := make([]*domain.PickingFragment, 0, len(fragmentIDs))
	for _, id := range fragmentIDs {
		f, ok := detachFragment(next, id)
		if !ok {
			return nil, &domain.UnknownFragmentError{FragmentID: id}
		}
		moved = append(moved, f)
	}

	if target == nil {
		for _, f := range moved {
			next.Unassigned = append(next.Unassigned, domain.UnassignedFragment{
				Fragment: f,
				Reason:   domain.ReasonMovedOut,
			})
		}
		return next, nil
	}

	for _, f := range moved {
		if err := insertIntoTruck(target, f, cfg); err != nil {
			return nil, err
		}
	}
	return next, nil
}

// AddTruck appends an empty truck with the given route attributes and
// the client's default position capacity.
func AddTruck(
	plan *domain.Plan,
	cds, ces []string,
	routeType domain.RouteType,
	cfg policy.ClientConfig,
) (*domain.Plan, error) {
	next := plan.Clone()

	route := domain.NewRouteKey(cds, ces)
	if routeType == "" {
		routeType = cfg.RouteTypeFor(route.DistributionCenters)
	}

	next.Trucks = append(next.Trucks, domain.NewTruck(
		uuid.NewString(),
		route,
		routeType,
		cfg.DefaultCapacityPositions,
	))
	return next, nil
}

// DeleteTruck removes a truck, returning its fragments to the
// unassigned pool rather than dropping them.
func DeleteTruck(plan *domain.Plan, truckID string) (*domain.Plan, error) {
	next := plan.Clone()

	idx := -1
	for i, t := range next.Trucks {
		if t.ID == truckID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, &domain.UnknownTruckError{TruckID: truckID}
	}

	for _, p := range next.Trucks[idx].Positions {
		for _, f := range p.Fragments {
			next.Unassigned = append(next.Unassigned, domain.UnassignedFragment{
				Fragment: f,
				Reason:   domain.ReasonTruckDeleted,
			})
		}
	}
	next.Trucks = append(next.Trucks[:idx], next.Trucks[idx+1:]...)
	return next, nil
}

// lookupFragment finds a fragment either on a truck or in the
// unassigned pool.
func lookupFragment(plan *domain.Plan, fragmentID string) (*domain.PickingFragment, bool) {
	if _, _, f, ok := plan.FindFragment(fragmentID); ok {
		return f, true
	}
	for _, u := range plan.Unassigned {
		if u.Fragment.ID == fragmentID {
			return u.Fragment, true
		}
	}
	return nil, false
}

// detachFragment removes a fragment from wherever it currently lives,
// deleting its pallet if that leaves it empty.
func detachFragment(plan *domain.Plan, fragmentID string) (*domain.PickingFragment, bool) {
	if truck, pallet, _, ok := plan.FindFragment(fragmentID); ok {
		f, _ := pallet.Remove(fragmentID)
		if pallet.IsEmpty() {
			truck.RemovePallet(pallet.ID)
		}
		return f, true
	}
	return plan.RemoveUnassigned(fragmentID)
}

// insertIntoTruck re-runs first-fit insertion scoped to one truck: try
// the truck's pallets in position order, otherwise open a new pallet if
// a position is free.
func insertIntoTruck(t *domain.Truck, f *domain.PickingFragment, cfg policy.ClientConfig) error {
	for _, p := range t.Positions {
		if CanAddFragment(p, f, cfg) {
			p.Add(f)
			return nil
		}
	}

	if t.UsedPositions() >= t.CapacityPositions {
		return &domain.CapacityExceededError{TruckID: t.ID, CapacityPositions: t.CapacityPositions}
	}

	p := domain.NewPhysicalPallet("pallet-"+uuid.NewString()[:8], f.Stacking)
	if !CanAddFragment(p, f, cfg) {
		// Even an empty pallet rejects it: the fragment alone breaks
		// the height cap.
		return &domain.FragmentTooTallError{
			SKU:         f.SKU,
			OrderID:     f.OrderID,
			HeightCm:    f.HeightCm,
			MaxHeightCm: cfg.MaxHeightCm,
		}
	}
	p.Add(f)
	return t.AddPallet(p)
}
