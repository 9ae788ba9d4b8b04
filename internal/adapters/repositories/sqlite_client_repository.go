package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"pallet-consolidation-service/internal/policy"
)

// SQLite-backed implementation of the ClientConfigRepository port.
type SqliteClientRepository struct{ DB *sql.DB }

func NewSqliteClientRepository(db *sql.DB) *SqliteClientRepository {
	return &SqliteClientRepository{DB: db}
}

// Return all configured client policies, backhaul CDs included.
func (s *SqliteClientRepository) ListClientConfigs(ctx context.Context) ([]policy.ClientConfig, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite client repository: DB is nil")
	}

	query := `
	SELECT
		client_id,
		allows_consolidation,
		max_distinct_skus,
		max_height_cm,
		capacity_positions,
		max_weight_kg,
		max_volume_m3
	FROM clients
	ORDER BY client_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list client configs: query clients table: %w", err)
	}
	defer rows.Close()

	configs := make([]policy.ClientConfig, 0, 8)
	for rows.Next() {
		var id string
		var allows, maxSKUs, capacity int
		var maxHeight, maxWeight, maxVolume string
		err := rows.Scan(&id, &allows, &maxSKUs, &maxHeight, &capacity, &maxWeight, &maxVolume)
		if err != nil {
			return nil, fmt.Errorf("list client configs: scan row: %w", err)
		}

		cfg := policy.ClientConfig{
			ClientID:                 id,
			AllowsConsolidation:      allows != 0,
			MaxDistinctSKUsPerPallet: maxSKUs,
			DefaultCapacityPositions: capacity,
		}
		for _, field := range []struct {
			name string
			raw  string
			dst  *decimal.Decimal
		}{
			{"max_height_cm", maxHeight, &cfg.MaxHeightCm},
			{"max_weight_kg", maxWeight, &cfg.MaxWeightKg},
			{"max_volume_m3", maxVolume, &cfg.MaxVolumeM3},
		} {
			d, err := decimal.NewFromString(field.raw)
			if err != nil {
				return nil, fmt.Errorf("list client configs: client %q: parse %s %q: %w", id, field.name, field.raw, err)
			}
			*field.dst = d
		}

		configs = append(configs, cfg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list client configs: row iteration: %w", err)
	}

	for i := range configs {
		cds, err := s.listBackhaulCDs(ctx, configs[i].ClientID)
		if err != nil {
			return nil, err
		}
		configs[i].BackhaulCDs = cds
	}

	return configs, nil
}

func (s *SqliteClientRepository) listBackhaulCDs(ctx context.Context, clientID string) ([]string, error) {
	query := `
	SELECT distribution_center
	FROM client_backhaul_cds
	WHERE client_id = ?;
	`
	rows, err := s.DB.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("list client configs: query backhaul cds for %q: %w", clientID, err)
	}
	defer rows.Close()

	cds := make([]string, 0, 4)
	for rows.Next() {
		var cd string
		if err := rows.Scan(&cd); err != nil {
			return nil, fmt.Errorf("list client configs: scan backhaul cd: %w", err)
		}
		cds = append(cds, cd)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list client configs: backhaul cd iteration: %w", err)
	}

	slices.Sort(cds)
	return cds, nil
}
