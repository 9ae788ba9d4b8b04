package domain

import (
	"slices"
	"testing"
)

func TestNewRouteKeyNormalizes(t *testing.T) {
	r := NewRouteKey(
		[]string{" CD2", "CD1", "CD2", ""},
		[]string{"0103", "0088 ", "0088"},
	)

	if !slices.Equal(r.DistributionCenters, []string{"CD1", "CD2"}) {
		t.Errorf("DistributionCenters = %v, want [CD1 CD2]", r.DistributionCenters)
	}
	if !slices.Equal(r.SalesChannels, []string{"0088", "0103"}) {
		t.Errorf("SalesChannels = %v, want [0088 0103]", r.SalesChannels)
	}
}

func TestRouteKeyContains(t *testing.T) {
	r := NewRouteKey([]string{"CD1", "CD2"}, []string{"0088"})

	if !r.Contains("CD1", "0088") {
		t.Errorf("Contains(CD1, 0088) = false, want true")
	}
	if !r.Contains(" CD2 ", "0088") {
		t.Errorf("Contains with surrounding spaces = false, want true")
	}
	if r.Contains("CD3", "0088") {
		t.Errorf("Contains(CD3, 0088) = true, want false")
	}
	if r.Contains("CD1", "0103") {
		t.Errorf("Contains(CD1, 0103) = true, want false")
	}
}

func TestRouteKeyKeyIsStable(t *testing.T) {
	a := NewRouteKey([]string{"CD2", "CD1"}, []string{"0103", "0088"})
	b := NewRouteKey([]string{"CD1", "CD2"}, []string{"0088", "0103"})

	if a.Key() != b.Key() {
		t.Errorf("Key mismatch for equivalent routes: %q vs %q", a.Key(), b.Key())
	}
}

func TestParseStackingType(t *testing.T) {
	if got := ParseStackingType("base"); got != StackingBase {
		t.Errorf("ParseStackingType(base) = %s", got)
	}
	if got := ParseStackingType("No Apilable"); got != StackingFlexible {
		t.Errorf("unknown tag should fall back to FLEXIBLE, got %s", got)
	}
	if got := ParseStackingType("non stackable"); got != StackingNonStackable {
		t.Errorf("ParseStackingType(non stackable) = %s", got)
	}
	if got := ParseStackingType(""); got != StackingFlexible {
		t.Errorf("ParseStackingType(empty) = %s, want FLEXIBLE", got)
	}
}

func TestParseRouteType(t *testing.T) {
	if got := ParseRouteType("Backhaul"); got != RouteBackhaul {
		t.Errorf("ParseRouteType(Backhaul) = %s", got)
	}
	if got := ParseRouteType("bogus"); got != RouteNormal {
		t.Errorf("ParseRouteType(bogus) = %s, want normal", got)
	}
}
