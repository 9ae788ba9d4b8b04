package dto

import "pallet-consolidation-service/internal/services"

type BuildPlanRequest struct {
	ClientID          string `json:"client_id"`
	Strategy          string `json:"strategy"`
	CapacityPositions int    `json:"capacity_positions"`
}

type BuildPlanResponse struct {
	PlanID string                  `json:"plan_id"`
	Plan   PlanSnapshot            `json:"plan"`
	Stats  services.PlanStatistics `json:"stats"`
}

// Interactive edit requests all carry the current snapshot in and get a
// transformed snapshot out; the server holds no mutable session state.

type MoveOrdersRequest struct {
	ClientID      string       `json:"client_id"`
	Plan          PlanSnapshot `json:"plan"`
	FragmentIDs   []string     `json:"fragment_ids"`
	TargetTruckID string       `json:"target_truck_id"`
}

type AddTruckRequest struct {
	ClientID            string       `json:"client_id"`
	Plan                PlanSnapshot `json:"plan"`
	DistributionCenters []string     `json:"distribution_centers"`
	SalesChannels       []string     `json:"sales_channels"`
	RouteType           string       `json:"route_type"`
}

type DeleteTruckRequest struct {
	ClientID string       `json:"client_id"`
	Plan     PlanSnapshot `json:"plan"`
	TruckID  string       `json:"truck_id"`
}

type StatsRequest struct {
	Plan PlanSnapshot `json:"plan"`
}

type PlanEditResponse struct {
	Plan  PlanSnapshot            `json:"plan"`
	Stats services.PlanStatistics `json:"stats"`
}
