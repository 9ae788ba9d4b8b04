package services

import (
	"encoding/json"
	"errors"
	"testing"

	"pallet-consolidation-service/internal/domain"
)

// twoTruckPlan builds a plan with two trucks on the same route, the
// first holding one pallet with a single picking fragment.
func twoTruckPlan(t *testing.T) *domain.Plan {
	t.Helper()

	route := domain.NewRouteKey([]string{"CD1"}, []string{"0088"})
	t1 := domain.NewTruck("truck-001", route, domain.RouteNormal, 30)
	t2 := domain.NewTruck("truck-002", route, domain.RouteNormal, 30)

	pallet := domain.NewPhysicalPallet("pallet-0001", domain.StackingBase)
	pallet.Add(&domain.PickingFragment{
		ID:                 "O-1/SKU-A/picking",
		SKU:                "SKU-A",
		OrderID:            "O-1",
		DistributionCenter: "CD1",
		SalesChannel:       "0088",
		HeightCm:           dec(75),
		Stacking:           domain.StackingBase,
	})
	if err := t1.AddPallet(pallet); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return &domain.Plan{Trucks: []*domain.Truck{t1, t2}}
}

func snapshot(t *testing.T, plan *domain.Plan) string {
	t.Helper()
	b, err := json.Marshal(plan)
	if err != nil {
		t.Fatalf("marshal plan: %v", err)
	}
	return string(b)
}

func TestMoveOrdersBetweenTrucks(t *testing.T) {
	cfg := testCfg(true, 4, 270)
	plan := twoTruckPlan(t)

	next, err := MoveOrders(plan, []string{"O-1/SKU-A/picking"}, "truck-002", cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	src, _ := next.TruckByID("truck-001")
	if src.UsedPositions() != 0 {
		t.Errorf("source truck should have its emptied pallet deleted, positions = %d", src.UsedPositions())
	}

	dst, _ := next.TruckByID("truck-002")
	if dst.FragmentCount() != 1 {
		t.Errorf("target truck fragment count = %d, want 1", dst.FragmentCount())
	}

	// Input snapshot untouched.
	if orig, _ := plan.TruckByID("truck-001"); orig.UsedPositions() != 1 {
		t.Errorf("input plan was mutated")
	}
}

func TestMoveOrdersRoundTripRestoresMembership(t *testing.T) {
	cfg := testCfg(true, 4, 270)
	plan := twoTruckPlan(t)

	there, err := MoveOrders(plan, []string{"O-1/SKU-A/picking"}, "truck-002", cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	back, err := MoveOrders(there, []string{"O-1/SKU-A/picking"}, "truck-001", cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	src, _ := back.TruckByID("truck-001")
	if src.FragmentCount() != 1 {
		t.Errorf("fragment did not return to truck-001, count = %d", src.FragmentCount())
	}
	dst, _ := back.TruckByID("truck-002")
	if dst.FragmentCount() != 0 {
		t.Errorf("truck-002 still holds %d fragments", dst.FragmentCount())
	}
}

func TestMoveOrdersIncompatibleRouteLeavesPlanUnchanged(t *testing.T) {
	cfg := testCfg(true, 4, 270)
	plan := twoTruckPlan(t)

	other := domain.NewTruck("truck-003", domain.NewRouteKey([]string{"CD2"}, []string{"0103"}), domain.RouteNormal, 30)
	plan.Trucks = append(plan.Trucks, other)

	before := snapshot(t, plan)

	_, err := MoveOrders(plan, []string{"O-1/SKU-A/picking"}, "truck-003", cfg)
	if err == nil {
		t.Fatalf("expected route error, got nil")
	}
	var routeErr *domain.IncompatibleRouteError
	if !errors.As(err, &routeErr) {
		t.Fatalf("error type = %T, want *domain.IncompatibleRouteError", err)
	}

	if after := snapshot(t, plan); after != before {
		t.Errorf("plan changed after failed move")
	}
}

func TestMoveOrdersCapacityExceeded(t *testing.T) {
	cfg := testCfg(false, 1, 270)
	plan := twoTruckPlan(t)

	// Fill truck-002 to capacity with a pallet that accepts no company.
	dst, _ := plan.TruckByID("truck-002")
	dst.CapacityPositions = 1
	full := domain.NewPhysicalPallet("pallet-0002", domain.StackingBase)
	full.Add(&domain.PickingFragment{
		ID:                 "O-2/SKU-B/full-1",
		SKU:                "SKU-B",
		OrderID:            "O-2",
		DistributionCenter: "CD1",
		SalesChannel:       "0088",
		HeightCm:           dec(150),
		Stacking:           domain.StackingBase,
		FullPallet:         true,
	})
	if err := dst.AddPallet(full); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	before := snapshot(t, plan)

	_, err := MoveOrders(plan, []string{"O-1/SKU-A/picking"}, "truck-002", cfg)
	if err == nil {
		t.Fatalf("expected capacity error, got nil")
	}
	var capErr *domain.CapacityExceededError
	if !errors.As(err, &capErr) {
		t.Fatalf("error type = %T, want *domain.CapacityExceededError", err)
	}

	if after := snapshot(t, plan); after != before {
		t.Errorf("plan changed after failed move")
	}
}

func TestMoveOrdersUnknownTruckAndFragment(t *testing.T) {
	cfg := testCfg(true, 4, 270)
	plan := twoTruckPlan(t)

	_, err := MoveOrders(plan, []string{"O-1/SKU-A/picking"}, "truck-099", cfg)
	var truckErr *domain.UnknownTruckError
	if !errors.As(err, &truckErr) {
		t.Fatalf("error type = %T, want *domain.UnknownTruckError", err)
	}

	_, err = MoveOrders(plan, []string{"ghost"}, "truck-002", cfg)
	var fragErr *domain.UnknownFragmentError
	if !errors.As(err, &fragErr) {
		t.Fatalf("error type = %T, want *domain.UnknownFragmentError", err)
	}
}

func TestMoveOrdersToUnassignedPool(t *testing.T) {
	cfg := testCfg(true, 4, 270)
	plan := twoTruckPlan(t)

	next, err := MoveOrders(plan, []string{"O-1/SKU-A/picking"}, "", cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(next.Unassigned) != 1 || next.Unassigned[0].Reason != domain.ReasonMovedOut {
		t.Fatalf("unassigned = %+v, want one moved_out entry", next.Unassigned)
	}
	if next.TotalFragments() != plan.TotalFragments() {
		t.Errorf("fragment count not conserved: %d vs %d", next.TotalFragments(), plan.TotalFragments())
	}
}

func TestMoveOrdersReinsertsFromUnassignedPool(t *testing.T) {
	cfg := testCfg(true, 4, 270)
	plan := twoTruckPlan(t)

	out, err := MoveOrders(plan, []string{"O-1/SKU-A/picking"}, "", cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	backIn, err := MoveOrders(out, []string{"O-1/SKU-A/picking"}, "truck-001", cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(backIn.Unassigned) != 0 {
		t.Errorf("unassigned pool should be empty, got %d", len(backIn.Unassigned))
	}
	src, _ := backIn.TruckByID("truck-001")
	if src.FragmentCount() != 1 {
		t.Errorf("fragment count = %d, want 1", src.FragmentCount())
	}
}

func TestAddTruck(t *testing.T) {
	cfg := testCfg(true, 4, 270)
	cfg.DefaultCapacityPositions = 28
	plan := &domain.Plan{}

	next, err := AddTruck(plan, []string{"CD2", "CD1"}, []string{"0088"}, domain.RouteMultiCD, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(next.Trucks) != 1 {
		t.Fatalf("truck count = %d, want 1", len(next.Trucks))
	}
	truck := next.Trucks[0]
	if truck.ID == "" {
		t.Errorf("truck ID must not be empty")
	}
	if truck.CapacityPositions != 28 {
		t.Errorf("capacity = %d, want 28", truck.CapacityPositions)
	}
	if truck.RouteType != domain.RouteMultiCD {
		t.Errorf("route type = %s, want multi_cd", truck.RouteType)
	}
	if !truck.Route.Contains("CD1", "0088") || !truck.Route.Contains("CD2", "0088") {
		t.Errorf("route not normalized: %+v", truck.Route)
	}
	if len(plan.Trucks) != 0 {
		t.Errorf("input plan was mutated")
	}
}

func TestDeleteTruckMovesFragmentsToUnassigned(t *testing.T) {
	plan := twoTruckPlan(t)

	// Second pallet on the same truck so the deletion covers several pallets.
	src, _ := plan.TruckByID("truck-001")
	extra := domain.NewPhysicalPallet("pallet-0002", domain.StackingBase)
	extra.Add(&domain.PickingFragment{
		ID:                 "O-2/SKU-B/picking",
		SKU:                "SKU-B",
		OrderID:            "O-2",
		DistributionCenter: "CD1",
		SalesChannel:       "0088",
		HeightCm:           dec(90),
		Stacking:           domain.StackingBase,
	})
	if err := src.AddPallet(extra); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	total := plan.TotalFragments()

	next, err := DeleteTruck(plan, "truck-001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := next.TruckByID("truck-001"); ok {
		t.Errorf("truck-001 still present")
	}
	if len(next.Unassigned) != 2 {
		t.Fatalf("unassigned count = %d, want 2", len(next.Unassigned))
	}
	for _, u := range next.Unassigned {
		if u.Reason != domain.ReasonTruckDeleted {
			t.Errorf("reason = %s, want truck_deleted", u.Reason)
		}
	}
	if next.TotalFragments() != total {
		t.Errorf("fragment count not conserved: %d vs %d", next.TotalFragments(), total)
	}
}

func TestDeleteUnknownTruck(t *testing.T) {
	plan := twoTruckPlan(t)

	_, err := DeleteTruck(plan, "truck-099")
	var truckErr *domain.UnknownTruckError
	if !errors.As(err, &truckErr) {
		t.Fatalf("error type = %T, want *domain.UnknownTruckError", err)
	}
}
