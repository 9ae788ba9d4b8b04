package dto

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"pallet-consolidation-service/internal/domain"
)

type FragmentResponse struct {
	ID                 string          `json:"id"`
	SKU                string          `json:"sku"`
	OrderID            string          `json:"order_id"`
	DistributionCenter string          `json:"distribution_center"`
	SalesChannel       string          `json:"sales_channel"`
	Fraction           decimal.Decimal `json:"fraction"`
	HeightCm           decimal.Decimal `json:"height_cm"`
	WeightKg           decimal.Decimal `json:"weight_kg"`
	VolumeM3           decimal.Decimal `json:"volume_m3"`
	Stacking           string          `json:"stacking"`
	FullPallet         bool            `json:"full_pallet"`
}

type PalletResponse struct {
	ID            string             `json:"id"`
	Stacking      string             `json:"stacking"`
	TotalHeightCm decimal.Decimal    `json:"total_height_cm"`
	TotalWeightKg decimal.Decimal    `json:"total_weight_kg"`
	Fragments     []FragmentResponse `json:"fragments"`
}

type TruckResponse struct {
	ID                  string           `json:"id"`
	DistributionCenters []string         `json:"distribution_centers"`
	SalesChannels       []string         `json:"sales_channels"`
	RouteType           string           `json:"route_type"`
	CapacityPositions   int              `json:"capacity_positions"`
	Pallets             []PalletResponse `json:"pallets"`
}

type UnassignedResponse struct {
	Fragment FragmentResponse `json:"fragment"`
	Reason   string           `json:"reason"`
}

// PlanSnapshot is the wire form of a full plan. It round-trips: responses
// carry it out, interactive edit requests carry it back in.
type PlanSnapshot struct {
	Trucks     []TruckResponse      `json:"trucks"`
	Unassigned []UnassignedResponse `json:"unassigned"`
}

func fragmentFromDomain(f *domain.PickingFragment) FragmentResponse {
	return FragmentResponse{
		ID:                 f.ID,
		SKU:                f.SKU,
		OrderID:            f.OrderID,
		DistributionCenter: f.DistributionCenter,
		SalesChannel:       f.SalesChannel,
		Fraction:           f.Fraction,
		HeightCm:           f.HeightCm,
		WeightKg:           f.WeightKg,
		VolumeM3:           f.VolumeM3,
		Stacking:           string(f.Stacking),
		FullPallet:         f.FullPallet,
	}
}

func (fr FragmentResponse) toDomain() (*domain.PickingFragment, error) {
	if strings.TrimSpace(fr.ID) == "" {
		return nil, fmt.Errorf("fragment %s/%s: id cannot be empty", fr.OrderID, fr.SKU)
	}
	return &domain.PickingFragment{
		ID:                 fr.ID,
		SKU:                fr.SKU,
		OrderID:            fr.OrderID,
		DistributionCenter: fr.DistributionCenter,
		SalesChannel:       fr.SalesChannel,
		Fraction:           fr.Fraction,
		HeightCm:           fr.HeightCm,
		WeightKg:           fr.WeightKg,
		VolumeM3:           fr.VolumeM3,
		Stacking:           domain.ParseStackingType(fr.Stacking),
		FullPallet:         fr.FullPallet,
	}, nil
}

// PlanFromDomain converts a plan into its wire form.
func PlanFromDomain(plan *domain.Plan) PlanSnapshot {
	out := PlanSnapshot{
		Trucks:     make([]TruckResponse, 0, len(plan.Trucks)),
		Unassigned: make([]UnassignedResponse, 0, len(plan.Unassigned)),
	}

	for _, t := range plan.Trucks {
		tr := TruckResponse{
			ID:                  t.ID,
			DistributionCenters: t.Route.DistributionCenters,
			SalesChannels:       t.Route.SalesChannels,
			RouteType:           string(t.RouteType),
			CapacityPositions:   t.CapacityPositions,
			Pallets:             make([]PalletResponse, 0, len(t.Positions)),
		}
		for _, p := range t.Positions {
			pr := PalletResponse{
				ID:            p.ID,
				Stacking:      string(p.Stacking),
				TotalHeightCm: p.TotalHeightCm(),
				TotalWeightKg: p.TotalWeightKg(),
				Fragments:     make([]FragmentResponse, 0, len(p.Fragments)),
			}
			for _, f := range p.Fragments {
				pr.Fragments = append(pr.Fragments, fragmentFromDomain(f))
			}
			tr.Pallets = append(tr.Pallets, pr)
		}
		out.Trucks = append(out.Trucks, tr)
	}

	for _, u := range plan.Unassigned {
		out.Unassigned = append(out.Unassigned, UnassignedResponse{
			Fragment: fragmentFromDomain(u.Fragment),
			Reason:   string(u.Reason),
		})
	}

	return out
}

// ToDomain rebuilds the domain plan from its wire form. Pallet totals in
// the input are ignored; they are recomputed from the fragments.
func (ps PlanSnapshot) ToDomain() (*domain.Plan, error) {
	plan := &domain.Plan{
		Trucks:     make([]*domain.Truck, 0, len(ps.Trucks)),
		Unassigned: make([]domain.UnassignedFragment, 0, len(ps.Unassigned)),
	}

	for _, tr := range ps.Trucks {
		if strings.TrimSpace(tr.ID) == "" {
			return nil, fmt.Errorf("truck id cannot be empty")
		}
		if tr.CapacityPositions < 1 {
			return nil, fmt.Errorf("truck %s: capacity_positions must be positive", tr.ID)
		}
		t := domain.NewTruck(
			tr.ID,
			domain.NewRouteKey(tr.DistributionCenters, tr.SalesChannels),
			domain.ParseRouteType(tr.RouteType),
			tr.CapacityPositions,
		)
		for _, pr := range tr.Pallets {
			p := domain.NewPhysicalPallet(pr.ID, domain.ParseStackingType(pr.Stacking))
			for _, fr := range pr.Fragments {
				f, err := fr.toDomain()
				if err != nil {
					return nil, fmt.Errorf("truck %s: pallet %s: %w", tr.ID, pr.ID, err)
				}
				p.Add(f)
			}
			if err := t.AddPallet(p); err != nil {
				return nil, fmt.Errorf("truck %s: %w", tr.ID, err)
			}
		}
		plan.Trucks = append(plan.Trucks, t)
	}

	for _, ur := range ps.Unassigned {
		f, err := ur.Fragment.toDomain()
		if err != nil {
			return nil, fmt.Errorf("unassigned: %w", err)
		}
		plan.Unassigned = append(plan.Unassigned, domain.UnassignedFragment{
			Fragment: f,
			Reason:   domain.UnassignedReason(ur.Reason),
		})
	}

	return plan, nil
}
