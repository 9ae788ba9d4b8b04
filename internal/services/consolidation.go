package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"pallet-consolidation-service/internal/domain"
	"pallet-consolidation-service/internal/policy"

	"github.com/shopspring/decimal"
)

// ConsolidationResult is the outcome of packing order lines onto
// physical pallets. Fragments that can never fit a pallet are excluded
// individually instead of failing the whole run.
type ConsolidationResult struct {
	Pallets    []*domain.PhysicalPallet
	Unassigned []domain.UnassignedFragment
	Rejections []*domain.FragmentTooTallError
}

// Consolidate splits each order line into whole pallets plus a picking
// remainder, then groups remainders into shared physical pallets.
//
// The packing heuristic is first-fit-decreasing by height with
// SKU-ascending tie-break; groups are processed in sorted key order.
// Identical inputs always yield an identical pallet sequence.
func Consolidate(
	ctx context.Context,
	lines []*domain.OrderLine,
	cfg policy.ClientConfig,
) (*ConsolidationResult, error) {
	res := &ConsolidationResult{}

	fullFragments, pickings := splitOrderLines(lines)

	// Weed out fragments that exceed the height cap on their own before
	// packing; they can never fit and are reported as unassigned.
	packable := make([]*domain.PickingFragment, 0, len(pickings))
	for _, f := range append(slices.Clone(fullFragments), pickings...) {
		if f.HeightCm.GreaterThan(cfg.MaxHeightCm) {
			res.Unassigned = append(res.Unassigned, domain.UnassignedFragment{
				Fragment: f,
				Reason:   domain.ReasonFragmentTooTall,
			})
			res.Rejections = append(res.Rejections, &domain.FragmentTooTallError{
				SKU:         f.SKU,
				OrderID:     f.OrderID,
				HeightCm:    f.HeightCm,
				MaxHeightCm: cfg.MaxHeightCm,
			})
			continue
		}
		if !f.FullPallet {
			packable = append(packable, f)
		}
	}

	palletSeq := 0
	nextPalletID := func() string {
		palletSeq++
		return fmt.Sprintf("pallet-%04d", palletSeq)
	}

	// Whole pallets are never consolidated: each becomes its own
	// physical pallet in input order.
	for _, f := range fullFragments {
		if f.HeightCm.GreaterThan(cfg.MaxHeightCm) {
			continue
		}
		p := domain.NewPhysicalPallet(nextPalletID(), f.Stacking)
		p.Add(f)
		res.Pallets = append(res.Pallets, p)
	}

	// Pickings from different routes or stacking types never share a
	// pallet: a pallet rides exactly one truck bound for one route.
	groups := map[string][]*domain.PickingFragment{}
	for _, f := range packable {
		key := string(f.Stacking) + "|" + f.DistributionCenter + "|" + f.SalesChannel
		groups[key] = append(groups[key], f)
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, key := range keys {
		group := groups[key]

		slices.SortFunc(group, func(a, b *domain.PickingFragment) int {
			if c := b.HeightCm.Cmp(a.HeightCm); c != 0 {
				return c
			}
			if c := strings.Compare(a.SKU, b.SKU); c != 0 {
				return c
			}
			return strings.Compare(a.OrderID, b.OrderID)
		})

		var open []*domain.PhysicalPallet
		for _, f := range group {
			if err := ctx.Err(); err != nil {
				return nil, &domain.ComputationTimeoutError{Op: "consolidate"}
			}

			placed := false
			for _, p := range open {
				if CanAddFragment(p, f, cfg) {
					p.Add(f)
					placed = true
					break
				}
			}
			if !placed {
				p := domain.NewPhysicalPallet(nextPalletID(), f.Stacking)
				p.Add(f)
				open = append(open, p)
			}
		}
		res.Pallets = append(res.Pallets, open...)
	}

	return res, nil
}

// splitOrderLines cuts each line into floor(quantity) synthetic
// full-height fragments plus one picking fragment for the fractional
// remainder. Weight and volume are apportioned by fraction.
func splitOrderLines(lines []*domain.OrderLine) (full, pickings []*domain.PickingFragment) {
	one := decimal.NewFromInt(1)

	for _, line := range lines {
		qty := line.PalletQuantity
		if qty.LessThanOrEqual(decimal.Zero) {
			continue
		}

		whole := qty.Floor()
		remainder := qty.Sub(whole)
		wholeCount := int(whole.IntPart())

		for i := 1; i <= wholeCount; i++ {
			full = append(full, &domain.PickingFragment{
				ID:                 domain.FullPalletFragmentID(line.OrderID, line.SKU, i),
				SKU:                line.SKU,
				OrderID:            line.OrderID,
				DistributionCenter: line.DistributionCenter,
				SalesChannel:       line.SalesChannel,
				Fraction:           one,
				HeightCm:           line.FullPalletHeightCm,
				WeightKg:           safeShare(line.WeightKg, one, qty),
				VolumeM3:           safeShare(line.VolumeM3, one, qty),
				Stacking:           line.Stacking,
				FullPallet:         true,
			})
		}

		if remainder.IsPositive() {
			height := line.PickingHeightCm
			if !height.IsPositive() {
				// No measured picking height for this line: estimate
				// proportionally from the full-pallet height.
				height = line.FullPalletHeightCm.Mul(remainder)
			}
			pickings = append(pickings, &domain.PickingFragment{
				ID:                 domain.PickingFragmentID(line.OrderID, line.SKU),
				SKU:                line.SKU,
				OrderID:            line.OrderID,
				DistributionCenter: line.DistributionCenter,
				SalesChannel:       line.SalesChannel,
				Fraction:           remainder,
				HeightCm:           height,
				WeightKg:           safeShare(line.WeightKg, remainder, qty),
				VolumeM3:           safeShare(line.VolumeM3, remainder, qty),
				Stacking:           line.Stacking,
			})
		}
	}

	return full, pickings
}

// safeShare returns total * fraction / quantity, guarding against a
// zero quantity in malformed input rows.
func safeShare(total, fraction, qty decimal.Decimal) decimal.Decimal {
	if qty.IsZero() {
		return decimal.Zero
	}
	return total.Mul(fraction).Div(qty)
}
