package ports

import "context"

// Port: a boundary for persisting serialized plan snapshots within a
// session, so an operator can reset to the initially committed plan
// without re-deriving it.
type PlanSnapshotStore interface {
	// Store a snapshot under a plan identifier, replacing any previous one.
	SaveSnapshot(ctx context.Context, planID string, snapshot []byte) error
	// Retrieve a stored snapshot; found is false when the ID is unknown.
	GetSnapshot(ctx context.Context, planID string) (snapshot []byte, found bool, err error)
}
