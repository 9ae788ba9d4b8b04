package domain

import "strings"

// StackingType tags how a pallet may be physically stacked.
// Fragments with different stacking types never share a physical pallet.
type StackingType string

const (
	StackingBase         StackingType = "BASE"
	StackingSuperior     StackingType = "SUPERIOR"
	StackingFlexible     StackingType = "FLEXIBLE"
	StackingNonStackable StackingType = "NON_STACKABLE"
	StackingSelfStacking StackingType = "SELF_STACKING"
)

// ParseStackingType normalizes an input tag to a known stacking type.
// Unknown or empty tags fall back to FLEXIBLE, matching upstream data
// where the column is frequently blank.
func ParseStackingType(s string) StackingType {
	norm := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", "_"))
	switch StackingType(norm) {
	case StackingBase, StackingSuperior, StackingFlexible, StackingNonStackable, StackingSelfStacking:
		return StackingType(norm)
	default:
		return StackingFlexible
	}
}

// RouteType classifies a truck's route for reporting and grouping.
type RouteType string

const (
	RouteNormal   RouteType = "normal"
	RouteBackhaul RouteType = "backhaul"
	RouteMultiCD  RouteType = "multi_cd"
	RouteMultiCE  RouteType = "multi_ce"
)

// ParseRouteType normalizes an input tag; unknown values fall back to normal.
func ParseRouteType(s string) RouteType {
	switch RouteType(strings.ToLower(strings.TrimSpace(s))) {
	case RouteBackhaul:
		return RouteBackhaul
	case RouteMultiCD:
		return RouteMultiCD
	case RouteMultiCE:
		return RouteMultiCE
	default:
		return RouteNormal
	}
}
