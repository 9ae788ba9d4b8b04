package domain

import (
	"github.com/shopspring/decimal"
)

// PhysicalPallet is one real pallet occupying exactly one truck position.
// It holds one or more picking fragments of a single stacking type; a
// whole-pallet fragment always travels alone.
type PhysicalPallet struct {
	ID        string
	Stacking  StackingType
	Fragments []*PickingFragment
}

func NewPhysicalPallet(id string, stacking StackingType) *PhysicalPallet {
	return &PhysicalPallet{ID: id, Stacking: stacking}
}

// Add appends a fragment. Legality (height, SKU and stacking limits) is
// the validator's concern; Add only maintains the stacking tag of an
// empty pallet.
func (p *PhysicalPallet) Add(f *PickingFragment) {
	if len(p.Fragments) == 0 {
		p.Stacking = f.Stacking
	}
	p.Fragments = append(p.Fragments, f)
}

// Remove deletes the fragment with the given ID and reports whether it
// was present.
func (p *PhysicalPallet) Remove(fragmentID string) (*PickingFragment, bool) {
	for i, f := range p.Fragments {
		if f.ID == fragmentID {
			p.Fragments = append(p.Fragments[:i], p.Fragments[i+1:]...)
			return f, true
		}
	}
	return nil, false
}

func (p *PhysicalPallet) IsEmpty() bool {
	return len(p.Fragments) == 0
}

// HoldsFullPallet reports whether this pallet carries a whole-pallet
// fragment. Such pallets never accept additional fragments.
func (p *PhysicalPallet) HoldsFullPallet() bool {
	for _, f := range p.Fragments {
		if f.FullPallet {
			return true
		}
	}
	return false
}

// TotalHeightCm is the sum of all fragment heights.
func (p *PhysicalPallet) TotalHeightCm() decimal.Decimal {
	total := decimal.Zero
	for _, f := range p.Fragments {
		total = total.Add(f.HeightCm)
	}
	return total
}

func (p *PhysicalPallet) TotalWeightKg() decimal.Decimal {
	total := decimal.Zero
	for _, f := range p.Fragments {
		total = total.Add(f.WeightKg)
	}
	return total
}

func (p *PhysicalPallet) TotalVolumeM3() decimal.Decimal {
	total := decimal.Zero
	for _, f := range p.Fragments {
		total = total.Add(f.VolumeM3)
	}
	return total
}

// DistinctSKUCount counts unique SKUs across the contained fragments.
func (p *PhysicalPallet) DistinctSKUCount() int {
	seen := map[string]struct{}{}
	for _, f := range p.Fragments {
		seen[f.SKU] = struct{}{}
	}
	return len(seen)
}

// HasSKU reports whether the pallet already carries the given SKU.
func (p *PhysicalPallet) HasSKU(sku string) bool {
	for _, f := range p.Fragments {
		if f.SKU == sku {
			return true
		}
	}
	return false
}

func (p *PhysicalPallet) Clone() *PhysicalPallet {
	c := &PhysicalPallet{ID: p.ID, Stacking: p.Stacking}
	c.Fragments = make([]*PickingFragment, 0, len(p.Fragments))
	for _, f := range p.Fragments {
		c.Fragments = append(c.Fragments, f.Clone())
	}
	return c
}
