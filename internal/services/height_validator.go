package services

import (
	"pallet-consolidation-service/internal/domain"
	"pallet-consolidation-service/internal/policy"
)

// CanAddFragment decides whether a fragment may legally join a physical
// pallet under the client's configuration. It is the single source of
// truth for pallet legality: initial consolidation and every interactive
// move go through it, so the two call sites cannot drift apart.
func CanAddFragment(p *domain.PhysicalPallet, f *domain.PickingFragment, cfg policy.ClientConfig) bool {
	if p.TotalHeightCm().Add(f.HeightCm).GreaterThan(cfg.MaxHeightCm) {
		return false
	}

	if p.IsEmpty() {
		return true
	}

	// A whole pallet already fills its position on its own: it joins
	// nothing and nothing joins it.
	if f.FullPallet || p.HoldsFullPallet() {
		return false
	}

	// Stacking homogeneity: never mix stacking types on one pallet.
	if f.Stacking != p.Stacking {
		return false
	}

	// Without consolidation every picking gets its own pallet.
	if !cfg.AllowsConsolidation {
		return false
	}

	newDistinct := p.DistinctSKUCount()
	if !p.HasSKU(f.SKU) {
		newDistinct++
	}
	return newDistinct <= cfg.MaxDistinctSKUsPerPallet
}
