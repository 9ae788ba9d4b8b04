package domain

// Truck aggregate: a vehicle serving one route, holding physical pallets
// in floor positions up to a fixed capacity.
type Truck struct {
	ID                string
	Route             RouteKey
	RouteType         RouteType
	CapacityPositions int
	Positions         []*PhysicalPallet
}

func NewTruck(id string, route RouteKey, routeType RouteType, capacityPositions int) *Truck {
	return &Truck{
		ID:                id,
		Route:             route,
		RouteType:         routeType,
		CapacityPositions: capacityPositions,
	}
}

// AddPallet places a pallet into the next free position.
func (t *Truck) AddPallet(p *PhysicalPallet) error {
	if len(t.Positions) >= t.CapacityPositions {
		return &CapacityExceededError{TruckID: t.ID, CapacityPositions: t.CapacityPositions}
	}
	t.Positions = append(t.Positions, p)
	return nil
}

// RemovePallet deletes the pallet with the given ID, freeing its position.
func (t *Truck) RemovePallet(palletID string) (*PhysicalPallet, bool) {
	for i, p := range t.Positions {
		if p.ID == palletID {
			t.Positions = append(t.Positions[:i], t.Positions[i+1:]...)
			return p, true
		}
	}
	return nil, false
}

func (t *Truck) UsedPositions() int {
	return len(t.Positions)
}

func (t *Truck) FragmentCount() int {
	n := 0
	for _, p := range t.Positions {
		n += len(p.Fragments)
	}
	return n
}

func (t *Truck) Clone() *Truck {
	c := &Truck{
		ID:                t.ID,
		Route:             t.Route.Clone(),
		RouteType:         t.RouteType,
		CapacityPositions: t.CapacityPositions,
	}
	c.Positions = make([]*PhysicalPallet, 0, len(t.Positions))
	for _, p := range t.Positions {
		c.Positions = append(c.Positions, p.Clone())
	}
	return c
}
