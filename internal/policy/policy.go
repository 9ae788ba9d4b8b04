// Package policy resolves per-client packing rules. All downstream logic
// depends only on the resolved ClientConfig value; adding a client is a
// data entry, not a new code branch.
package policy

import (
	"slices"
	"strings"

	"pallet-consolidation-service/internal/domain"

	"github.com/shopspring/decimal"
)

// ClientConfig is the immutable consolidation configuration of one client.
type ClientConfig struct {
	ClientID                 string
	AllowsConsolidation      bool
	MaxDistinctSKUsPerPallet int
	MaxHeightCm              decimal.Decimal
	DefaultCapacityPositions int
	MaxWeightKg              decimal.Decimal
	MaxVolumeM3              decimal.Decimal
	BackhaulCDs              []string
}

// RouteTypeFor classifies a route served from the given distribution
// centers: backhaul when every CD is a backhaul CD, multi_cd when the
// truck spans several CDs.
func (c ClientConfig) RouteTypeFor(cds []string) domain.RouteType {
	if len(cds) > 1 {
		return domain.RouteMultiCD
	}
	for _, cd := range cds {
		if !slices.Contains(c.BackhaulCDs, cd) {
			return domain.RouteNormal
		}
	}
	if len(cds) == 0 {
		return domain.RouteNormal
	}
	return domain.RouteBackhaul
}

// Policy is a read-only lookup of client configurations.
type Policy struct {
	configs map[string]ClientConfig
}

func New(configs []ClientConfig) *Policy {
	m := make(map[string]ClientConfig, len(configs))
	for _, c := range configs {
		m[strings.ToLower(strings.TrimSpace(c.ClientID))] = c
	}
	return &Policy{configs: m}
}

// Resolve returns the configuration for a client identifier.
func (p *Policy) Resolve(clientID string) (ClientConfig, error) {
	c, ok := p.configs[strings.ToLower(strings.TrimSpace(clientID))]
	if !ok {
		return ClientConfig{}, &domain.UnknownClientError{ClientID: clientID}
	}
	return c, nil
}

// ClientIDs lists configured clients in sorted order.
func (p *Policy) ClientIDs() []string {
	ids := make([]string, 0, len(p.configs))
	for id := range p.configs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Builtin returns the fixed client table used when no database seed is
// present. Heights and consolidation limits follow each client's
// commercial agreement.
func Builtin() *Policy {
	return New([]ClientConfig{
		{
			ClientID:                 "cencosud",
			AllowsConsolidation:      false,
			MaxDistinctSKUsPerPallet: 1,
			MaxHeightCm:              decimal.NewFromInt(270),
			DefaultCapacityPositions: 30,
			MaxWeightKg:              decimal.NewFromInt(23000),
			MaxVolumeM3:              decimal.NewFromInt(70),
			BackhaulCDs:              []string{"N725 Bodega Noviciado", "N641 Bodega Noviciado PYP"},
		},
		{
			ClientID:                 "walmart",
			AllowsConsolidation:      false,
			MaxDistinctSKUsPerPallet: 1,
			MaxHeightCm:              decimal.NewFromInt(270),
			DefaultCapacityPositions: 30,
			MaxWeightKg:              decimal.NewFromInt(23000),
			MaxVolumeM3:              decimal.NewFromInt(70),
			BackhaulCDs:              []string{"6009 Lo Aguirre", "6020 Peñón"},
		},
		{
			ClientID:                 "disvet",
			AllowsConsolidation:      true,
			MaxDistinctSKUsPerPallet: 5,
			MaxHeightCm:              decimal.NewFromInt(260),
			DefaultCapacityPositions: 30,
			MaxWeightKg:              decimal.NewFromInt(23000),
			MaxVolumeM3:              decimal.NewFromInt(70),
			BackhaulCDs:              []string{"Cerro Grande", "Kameid"},
		},
		{
			ClientID:                 "smu",
			AllowsConsolidation:      true,
			MaxDistinctSKUsPerPallet: 5,
			MaxHeightCm:              decimal.NewFromInt(230),
			DefaultCapacityPositions: 30,
			MaxWeightKg:              decimal.NewFromInt(23000),
			MaxVolumeM3:              decimal.NewFromInt(70),
		},
	})
}
