package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQLite-backed implementation of the PlanSnapshotStore port. Snapshots
// are serialized plans stored so the initially committed plan survives
// any number of interactive edits.
type SqlitePlanStore struct{ DB *sql.DB }

func NewSqlitePlanStore(db *sql.DB) *SqlitePlanStore {
	return &SqlitePlanStore{DB: db}
}

func (s *SqlitePlanStore) SaveSnapshot(ctx context.Context, planID string, snapshot []byte) error {
	if s.DB == nil {
		return errors.New("sqlite plan store: DB is nil")
	}

	query := `
	INSERT OR REPLACE INTO plan_snapshots (plan_id, snapshot)
	VALUES (?, ?);
	`
	if _, err := s.DB.ExecContext(ctx, query, planID, snapshot); err != nil {
		return fmt.Errorf("save snapshot: insert plan_id=%s: %w", planID, err)
	}
	return nil
}

func (s *SqlitePlanStore) GetSnapshot(ctx context.Context, planID string) ([]byte, bool, error) {
	if s.DB == nil {
		return nil, false, errors.New("sqlite plan store: DB is nil")
	}

	query := `
	SELECT snapshot
	FROM plan_snapshots
	WHERE plan_id = ?;
	`
	var snapshot []byte
	err := s.DB.QueryRowContext(ctx, query, planID).Scan(&snapshot)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get snapshot: query plan_id=%s: %w", planID, err)
	}
	return snapshot, true, nil
}
