package services

import (
	"pallet-consolidation-service/internal/domain"

	"github.com/shopspring/decimal"
)

// PlanStatistics are aggregate fill metrics derived from one plan
// snapshot. Recomputing on an unchanged plan yields identical output.
type PlanStatistics struct {
	TruckCount          int             `json:"truck_count"`
	TrucksByRouteType   map[string]int  `json:"trucks_by_route_type"`
	TotalPallets        int             `json:"total_pallets"`
	OccupiedPositions   int             `json:"occupied_positions"`
	TotalPositions      int             `json:"total_positions"`
	FillPercent         decimal.Decimal `json:"fill_percent"`
	AssignedFragments   int             `json:"assigned_fragments"`
	UnassignedFragments int             `json:"unassigned_fragments"`
	TotalWeightKg       decimal.Decimal `json:"total_weight_kg"`
	TotalVolumeM3       decimal.Decimal `json:"total_volume_m3"`
}

// ComputeStatistics derives aggregate metrics from the plan. Pure and
// side-effect free.
func ComputeStatistics(plan *domain.Plan) PlanStatistics {
	stats := PlanStatistics{
		TrucksByRouteType: map[string]int{},
		FillPercent:       decimal.Zero,
		TotalWeightKg:     decimal.Zero,
		TotalVolumeM3:     decimal.Zero,
	}

	for _, t := range plan.Trucks {
		stats.TruckCount++
		stats.TrucksByRouteType[string(t.RouteType)]++
		stats.TotalPositions += t.CapacityPositions
		stats.OccupiedPositions += t.UsedPositions()
		stats.TotalPallets += len(t.Positions)

		for _, p := range t.Positions {
			stats.AssignedFragments += len(p.Fragments)
			stats.TotalWeightKg = stats.TotalWeightKg.Add(p.TotalWeightKg())
			stats.TotalVolumeM3 = stats.TotalVolumeM3.Add(p.TotalVolumeM3())
		}
	}
	stats.UnassignedFragments = len(plan.Unassigned)

	if stats.TotalPositions > 0 {
		stats.FillPercent = decimal.NewFromInt(int64(stats.OccupiedPositions)).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(stats.TotalPositions))).
			Round(1)
	}

	return stats
}
