package policy

import (
	"errors"
	"testing"

	"pallet-consolidation-service/internal/domain"
)

func TestResolveKnownClient(t *testing.T) {
	p := Builtin()

	cfg, err := p.Resolve("disvet")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.AllowsConsolidation {
		t.Errorf("disvet AllowsConsolidation = false, want true")
	}
	if cfg.MaxDistinctSKUsPerPallet != 5 {
		t.Errorf("disvet MaxDistinctSKUsPerPallet = %d, want 5", cfg.MaxDistinctSKUsPerPallet)
	}
}

func TestResolveIsCaseInsensitive(t *testing.T) {
	p := Builtin()

	if _, err := p.Resolve("  Walmart "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestResolveUnknownClient(t *testing.T) {
	p := Builtin()

	_, err := p.Resolve("acme")
	if err == nil {
		t.Fatalf("expected error, got nil")
	}

	var unknownErr *domain.UnknownClientError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("error type = %T, want *domain.UnknownClientError", err)
	}
	if unknownErr.ClientID != "acme" {
		t.Errorf("ClientID = %s, want acme", unknownErr.ClientID)
	}
}

func TestRouteTypeFor(t *testing.T) {
	cfg, err := Builtin().Resolve("disvet")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := cfg.RouteTypeFor([]string{"Kameid"}); got != domain.RouteBackhaul {
		t.Errorf("RouteTypeFor(Kameid) = %s, want backhaul", got)
	}
	if got := cfg.RouteTypeFor([]string{"Bioñuble"}); got != domain.RouteNormal {
		t.Errorf("RouteTypeFor(Bioñuble) = %s, want normal", got)
	}
	if got := cfg.RouteTypeFor([]string{"Bioñuble", "Relun"}); got != domain.RouteMultiCD {
		t.Errorf("RouteTypeFor(two CDs) = %s, want multi_cd", got)
	}
}
