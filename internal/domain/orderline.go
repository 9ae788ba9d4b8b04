package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// OrderLine is one row of the uploaded demand: a SKU of an order with a
// (possibly fractional) confirmed pallet quantity. Read-only input to
// the planner.
type OrderLine struct {
	SKU                string
	OrderID            string
	DistributionCenter string
	SalesChannel       string
	PalletQuantity     decimal.Decimal
	FullPalletHeightCm decimal.Decimal
	PickingHeightCm    decimal.Decimal
	WeightKg           decimal.Decimal
	VolumeM3           decimal.Decimal
	Stacking           StackingType
}

// PickingFragment is a slice of an order line occupying part of a physical
// pallet: either the fractional picking remainder of a line, or the
// synthetic full-height fragment representing one whole pallet.
type PickingFragment struct {
	ID                 string
	SKU                string
	OrderID            string
	DistributionCenter string
	SalesChannel       string
	Fraction           decimal.Decimal
	HeightCm           decimal.Decimal
	WeightKg           decimal.Decimal
	VolumeM3           decimal.Decimal
	Stacking           StackingType
	FullPallet         bool
}

// FullPalletFragmentID derives the stable identifier of the n-th whole
// pallet cut from an order line. Derived IDs keep planning reproducible.
func FullPalletFragmentID(orderID, sku string, n int) string {
	return fmt.Sprintf("%s/%s/full-%d", orderID, sku, n)
}

// PickingFragmentID derives the stable identifier of the picking
// remainder cut from an order line.
func PickingFragmentID(orderID, sku string) string {
	return fmt.Sprintf("%s/%s/picking", orderID, sku)
}

func (f *PickingFragment) Clone() *PickingFragment {
	c := *f
	return &c
}
