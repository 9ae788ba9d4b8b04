package dto

import (
	"github.com/shopspring/decimal"

	"pallet-consolidation-service/internal/policy"
)

type ClientResponse struct {
	ClientID            string          `json:"client_id"`
	AllowsConsolidation bool            `json:"allows_consolidation"`
	MaxDistinctSKUs     int             `json:"max_distinct_skus"`
	MaxHeightCm         decimal.Decimal `json:"max_height_cm"`
	CapacityPositions   int             `json:"capacity_positions"`
	MaxWeightKg         decimal.Decimal `json:"max_weight_kg"`
	MaxVolumeM3         decimal.Decimal `json:"max_volume_m3"`
	BackhaulCDs         []string        `json:"backhaul_cds"`
}

type ListClientsResponse struct {
	Clients []ClientResponse `json:"clients"`
}

func ClientFromConfig(cfg policy.ClientConfig) ClientResponse {
	cds := cfg.BackhaulCDs
	if cds == nil {
		cds = []string{}
	}
	return ClientResponse{
		ClientID:            cfg.ClientID,
		AllowsConsolidation: cfg.AllowsConsolidation,
		MaxDistinctSKUs:     cfg.MaxDistinctSKUsPerPallet,
		MaxHeightCm:         cfg.MaxHeightCm,
		CapacityPositions:   cfg.DefaultCapacityPositions,
		MaxWeightKg:         cfg.MaxWeightKg,
		MaxVolumeM3:         cfg.MaxVolumeM3,
		BackhaulCDs:         cds,
	}
}
