package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// UnknownClientError: the client identifier has no configured policy.
// Fatal for the whole planning run.
type UnknownClientError struct {
	ClientID string
}

func (e *UnknownClientError) Error() string {
	return fmt.Sprintf("unknown client %q", e.ClientID)
}

// FragmentTooTallError: a single fragment exceeds the height cap on its
// own and can never be packed. Recovered per fragment, not fatal.
type FragmentTooTallError struct {
	SKU         string
	OrderID     string
	HeightCm    decimal.Decimal
	MaxHeightCm decimal.Decimal
}

func (e *FragmentTooTallError) Error() string {
	return fmt.Sprintf("fragment sku=%s order=%s height %scm exceeds max %scm",
		e.SKU, e.OrderID, e.HeightCm.String(), e.MaxHeightCm.String())
}

// IncompatibleRouteError: a fragment's (CD, CE) does not match the
// target truck's route.
type IncompatibleRouteError struct {
	FragmentID string
	TruckID    string
}

func (e *IncompatibleRouteError) Error() string {
	return fmt.Sprintf("fragment %q route is incompatible with truck %q", e.FragmentID, e.TruckID)
}

// CapacityExceededError: placing a pallet would exceed a truck's
// position capacity.
type CapacityExceededError struct {
	TruckID           string
	CapacityPositions int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("truck %q is at full capacity (positions=%d)", e.TruckID, e.CapacityPositions)
}

type UnknownTruckError struct {
	TruckID string
}

func (e *UnknownTruckError) Error() string {
	return fmt.Sprintf("unknown truck %q", e.TruckID)
}

type UnknownFragmentError struct {
	FragmentID string
}

func (e *UnknownFragmentError) Error() string {
	return fmt.Sprintf("unknown fragment %q", e.FragmentID)
}

// ComputationTimeoutError: a caller-supplied deadline expired before the
// computation finished. Fatal for that request only.
type ComputationTimeoutError struct {
	Op string
}

func (e *ComputationTimeoutError) Error() string {
	return fmt.Sprintf("%s: computation deadline exceeded", e.Op)
}
