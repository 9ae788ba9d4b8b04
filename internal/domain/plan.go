package domain

// UnassignedReason explains why a fragment is not placed on any truck.
type UnassignedReason string

const (
	ReasonFragmentTooTall UnassignedReason = "fragment_too_tall"
	ReasonNoTruckCapacity UnassignedReason = "no_truck_capacity"
	ReasonTruckDeleted    UnassignedReason = "truck_deleted"
	ReasonMovedOut        UnassignedReason = "moved_out"
)

// UnassignedFragment pairs a fragment with the reason it was excluded.
type UnassignedFragment struct {
	Fragment *PickingFragment
	Reason   UnassignedReason
}

// Plan is a full planning result: trucks with their pallets plus the
// pool of fragments that could not be (or are no longer) assigned.
// Every mutation produces a new snapshot; a Plan in a caller's hands is
// never modified in place.
type Plan struct {
	Trucks     []*Truck
	Unassigned []UnassignedFragment
}

func (pl *Plan) TruckByID(id string) (*Truck, bool) {
	for _, t := range pl.Trucks {
		if t.ID == id {
			return t, true
		}
	}
	return nil, false
}

// FindFragment locates an assigned fragment by ID and returns its truck
// and pallet.
func (pl *Plan) FindFragment(fragmentID string) (*Truck, *PhysicalPallet, *PickingFragment, bool) {
	for _, t := range pl.Trucks {
		for _, p := range t.Positions {
			for _, f := range p.Fragments {
				if f.ID == fragmentID {
					return t, p, f, true
				}
			}
		}
	}
	return nil, nil, nil, false
}

// RemoveUnassigned extracts a fragment from the unassigned pool by ID.
func (pl *Plan) RemoveUnassigned(fragmentID string) (*PickingFragment, bool) {
	for i, u := range pl.Unassigned {
		if u.Fragment.ID == fragmentID {
			f := u.Fragment
			pl.Unassigned = append(pl.Unassigned[:i], pl.Unassigned[i+1:]...)
			return f, true
		}
	}
	return nil, false
}

// TotalFragments counts assigned plus unassigned fragments.
func (pl *Plan) TotalFragments() int {
	n := len(pl.Unassigned)
	for _, t := range pl.Trucks {
		n += t.FragmentCount()
	}
	return n
}

// Clone deep-copies the plan so edits on the copy cannot leak into
// snapshots the caller retained.
func (pl *Plan) Clone() *Plan {
	c := &Plan{}
	c.Trucks = make([]*Truck, 0, len(pl.Trucks))
	for _, t := range pl.Trucks {
		c.Trucks = append(c.Trucks, t.Clone())
	}
	c.Unassigned = make([]UnassignedFragment, 0, len(pl.Unassigned))
	for _, u := range pl.Unassigned {
		c.Unassigned = append(c.Unassigned, UnassignedFragment{Fragment: u.Fragment.Clone(), Reason: u.Reason})
	}
	return c
}
