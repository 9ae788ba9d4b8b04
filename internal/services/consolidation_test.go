package services

import (
	"context"
	"testing"

	"pallet-consolidation-service/internal/domain"
	"pallet-consolidation-service/internal/policy"

	"github.com/shopspring/decimal"
)

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func testCfg(consolidation bool, maxSKUs int, maxHeight int64) policy.ClientConfig {
	return policy.ClientConfig{
		ClientID:                 "test",
		AllowsConsolidation:      consolidation,
		MaxDistinctSKUsPerPallet: maxSKUs,
		MaxHeightCm:              dec(maxHeight),
		DefaultCapacityPositions: 30,
		MaxWeightKg:              dec(23000),
		MaxVolumeM3:              dec(70),
	}
}

func orderLine(sku, orderID, qty string, fullH, pickH int64) *domain.OrderLine {
	q, err := decimal.NewFromString(qty)
	if err != nil {
		panic(err)
	}
	return &domain.OrderLine{
		SKU:                sku,
		OrderID:            orderID,
		DistributionCenter: "CD1",
		SalesChannel:       "0088",
		PalletQuantity:     q,
		FullPalletHeightCm: dec(fullH),
		PickingHeightCm:    dec(pickH),
		Stacking:           domain.StackingBase,
	}
}

func TestConsolidateWithoutConsolidationSplitsPerFragment(t *testing.T) {
	cfg := testCfg(false, 1, 270)
	lines := []*domain.OrderLine{orderLine("SKU-A", "O-1", "2.5", 150, 75)}

	res, err := Consolidate(context.Background(), lines, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Pallets) != 3 {
		t.Fatalf("pallet count = %d, want 3", len(res.Pallets))
	}
	for i := 0; i < 2; i++ {
		p := res.Pallets[i]
		if len(p.Fragments) != 1 || !p.Fragments[0].FullPallet {
			t.Errorf("pallet %d should hold one full fragment", i)
		}
		if !p.TotalHeightCm().Equal(dec(150)) {
			t.Errorf("full pallet %d height = %s, want 150", i, p.TotalHeightCm())
		}
	}
	picking := res.Pallets[2]
	if len(picking.Fragments) != 1 || picking.Fragments[0].FullPallet {
		t.Fatalf("third pallet should hold the picking fragment alone")
	}
	if !picking.TotalHeightCm().Equal(dec(75)) {
		t.Errorf("picking pallet height = %s, want 75", picking.TotalHeightCm())
	}
}

func TestConsolidatePacksFragmentsUpToHeightCap(t *testing.T) {
	cfg := testCfg(true, 4, 270)
	lines := []*domain.OrderLine{
		orderLine("SKU-A", "O-1", "0.5", 150, 75),
		orderLine("SKU-B", "O-2", "0.5", 180, 90),
		orderLine("SKU-C", "O-3", "0.5", 210, 105),
	}

	res, err := Consolidate(context.Background(), lines, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Pallets) != 1 {
		t.Fatalf("pallet count = %d, want 1", len(res.Pallets))
	}
	p := res.Pallets[0]
	if len(p.Fragments) != 3 {
		t.Errorf("fragment count = %d, want 3", len(p.Fragments))
	}
	if !p.TotalHeightCm().Equal(dec(270)) {
		t.Errorf("total height = %s, want 270", p.TotalHeightCm())
	}
	if p.DistinctSKUCount() != 3 {
		t.Errorf("distinct SKUs = %d, want 3", p.DistinctSKUCount())
	}
}

func TestConsolidateOpensNewPalletWhenHeightExceeded(t *testing.T) {
	cfg := testCfg(true, 4, 270)
	lines := []*domain.OrderLine{
		orderLine("SKU-A", "O-1", "0.5", 150, 75),
		orderLine("SKU-B", "O-2", "0.5", 180, 90),
		orderLine("SKU-C", "O-3", "0.5", 210, 105),
		orderLine("SKU-D", "O-4", "0.5", 100, 50),
	}

	res, err := Consolidate(context.Background(), lines, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 105+90+75 fills the first pallet exactly; 50 no longer fits.
	if len(res.Pallets) != 2 {
		t.Fatalf("pallet count = %d, want 2", len(res.Pallets))
	}
	if len(res.Pallets[0].Fragments) != 3 {
		t.Errorf("first pallet fragments = %d, want 3", len(res.Pallets[0].Fragments))
	}
	second := res.Pallets[1]
	if len(second.Fragments) != 1 || second.Fragments[0].SKU != "SKU-D" {
		t.Errorf("second pallet should hold only SKU-D, got %+v", second.Fragments)
	}
}

func TestConsolidateCountsDistinctSKUsNotFragments(t *testing.T) {
	cfg := testCfg(true, 3, 270)
	lines := []*domain.OrderLine{
		orderLine("SKU-A", "O-1", "0.3", 100, 50),
		orderLine("SKU-A", "O-2", "0.3", 100, 40),
		orderLine("SKU-B", "O-1", "0.3", 100, 45),
		orderLine("SKU-B", "O-2", "0.3", 100, 35),
		orderLine("SKU-C", "O-1", "0.3", 100, 30),
	}

	res, err := Consolidate(context.Background(), lines, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Pallets) != 1 {
		t.Fatalf("pallet count = %d, want 1", len(res.Pallets))
	}
	p := res.Pallets[0]
	if len(p.Fragments) != 5 {
		t.Errorf("fragment count = %d, want 5", len(p.Fragments))
	}
	if p.DistinctSKUCount() != 3 {
		t.Errorf("distinct SKUs = %d, want 3", p.DistinctSKUCount())
	}
}

func TestConsolidateExcludesTooTallFragment(t *testing.T) {
	cfg := testCfg(true, 4, 270)
	lines := []*domain.OrderLine{
		orderLine("SKU-A", "O-1", "0.5", 150, 300),
		orderLine("SKU-B", "O-2", "0.5", 150, 75),
	}

	res, err := Consolidate(context.Background(), lines, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Pallets) != 1 {
		t.Fatalf("pallet count = %d, want 1", len(res.Pallets))
	}
	if res.Pallets[0].Fragments[0].SKU != "SKU-B" {
		t.Errorf("packed SKU = %s, want SKU-B", res.Pallets[0].Fragments[0].SKU)
	}

	if len(res.Unassigned) != 1 {
		t.Fatalf("unassigned count = %d, want 1", len(res.Unassigned))
	}
	if res.Unassigned[0].Reason != domain.ReasonFragmentTooTall {
		t.Errorf("reason = %s, want fragment_too_tall", res.Unassigned[0].Reason)
	}
	if len(res.Rejections) != 1 || res.Rejections[0].SKU != "SKU-A" {
		t.Errorf("rejection should carry SKU-A, got %+v", res.Rejections)
	}
}

func TestConsolidateNeverMixesStackingTypes(t *testing.T) {
	cfg := testCfg(true, 4, 270)
	base := orderLine("SKU-A", "O-1", "0.5", 150, 75)
	superior := orderLine("SKU-B", "O-2", "0.5", 150, 75)
	superior.Stacking = domain.StackingSuperior

	res, err := Consolidate(context.Background(), []*domain.OrderLine{base, superior}, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Pallets) != 2 {
		t.Fatalf("pallet count = %d, want 2", len(res.Pallets))
	}
	for _, p := range res.Pallets {
		for _, f := range p.Fragments {
			if f.Stacking != p.Stacking {
				t.Errorf("pallet %s mixes stacking types", p.ID)
			}
		}
	}
}

func TestConsolidateSeparatesRoutes(t *testing.T) {
	cfg := testCfg(true, 4, 270)
	a := orderLine("SKU-A", "O-1", "0.5", 150, 75)
	b := orderLine("SKU-B", "O-2", "0.5", 150, 75)
	b.DistributionCenter = "CD2"

	res, err := Consolidate(context.Background(), []*domain.OrderLine{a, b}, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Pallets) != 2 {
		t.Fatalf("fragments from different routes must not share a pallet, got %d pallets", len(res.Pallets))
	}
}

func TestConsolidateFallsBackToProportionalPickingHeight(t *testing.T) {
	cfg := testCfg(true, 4, 270)
	line := orderLine("SKU-A", "O-1", "0.5", 150, 0)

	res, err := Consolidate(context.Background(), []*domain.OrderLine{line}, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Pallets) != 1 {
		t.Fatalf("pallet count = %d, want 1", len(res.Pallets))
	}
	if got := res.Pallets[0].TotalHeightCm(); !got.Equal(dec(75)) {
		t.Errorf("estimated picking height = %s, want 75 (150 x 0.5)", got)
	}
}

func TestConsolidateIsDeterministic(t *testing.T) {
	cfg := testCfg(true, 4, 270)
	lines := []*domain.OrderLine{
		orderLine("SKU-C", "O-3", "1.5", 210, 105),
		orderLine("SKU-A", "O-1", "0.5", 150, 75),
		orderLine("SKU-B", "O-2", "2.5", 180, 90),
		orderLine("SKU-D", "O-4", "0.5", 100, 50),
	}

	first, err := Consolidate(context.Background(), lines, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Consolidate(context.Background(), lines, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first.Pallets) != len(second.Pallets) {
		t.Fatalf("pallet counts differ: %d vs %d", len(first.Pallets), len(second.Pallets))
	}
	for i := range first.Pallets {
		a, b := first.Pallets[i], second.Pallets[i]
		if a.ID != b.ID {
			t.Errorf("pallet %d ID differs: %s vs %s", i, a.ID, b.ID)
		}
		if len(a.Fragments) != len(b.Fragments) {
			t.Fatalf("pallet %d fragment counts differ", i)
		}
		for j := range a.Fragments {
			if a.Fragments[j].ID != b.Fragments[j].ID {
				t.Errorf("pallet %d fragment %d differs: %s vs %s", i, j, a.Fragments[j].ID, b.Fragments[j].ID)
			}
		}
	}
}

func TestConsolidateHonorsDeadline(t *testing.T) {
	cfg := testCfg(true, 4, 270)
	lines := []*domain.OrderLine{orderLine("SKU-A", "O-1", "0.5", 150, 75)}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Consolidate(ctx, lines, cfg)
	if err == nil {
		t.Fatalf("expected timeout error, got nil")
	}
	if _, ok := err.(*domain.ComputationTimeoutError); !ok {
		t.Fatalf("error type = %T, want *domain.ComputationTimeoutError", err)
	}
}
