package domain

import (
	"slices"
	"strings"
)

// RouteKey identifies the route a truck serves: the distribution centers
// it departs from and the sales channels it delivers to. Both sets are
// normalized (trimmed, deduplicated, sorted) on construction so that the
// rest of the system never distinguishes scalar from list inputs.
type RouteKey struct {
	DistributionCenters []string
	SalesChannels       []string
}

func NewRouteKey(cds, ces []string) RouteKey {
	return RouteKey{
		DistributionCenters: normalizeSet(cds),
		SalesChannels:       normalizeSet(ces),
	}
}

// Contains reports whether a fragment bound for (cd, ce) may travel on
// a truck serving this route.
func (r RouteKey) Contains(cd, ce string) bool {
	return slices.Contains(r.DistributionCenters, strings.TrimSpace(cd)) &&
		slices.Contains(r.SalesChannels, strings.TrimSpace(ce))
}

// Key returns a stable string form used for grouping and map keys.
func (r RouteKey) Key() string {
	return strings.Join(r.DistributionCenters, "-") + "|" + strings.Join(r.SalesChannels, "-")
}

func (r RouteKey) Clone() RouteKey {
	return RouteKey{
		DistributionCenters: slices.Clone(r.DistributionCenters),
		SalesChannels:       slices.Clone(r.SalesChannels),
	}
}

func normalizeSet(values []string) []string {
	out := make([]string, 0, len(values))
	seen := map[string]struct{}{}
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}
