package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"pallet-consolidation-service/internal/domain"
)

// SQLite-backed implementation of the OrderLineRepository port.
type SqliteOrderLineRepository struct{ DB *sql.DB }

func NewSqliteOrderLineRepository(db *sql.DB) *SqliteOrderLineRepository {
	return &SqliteOrderLineRepository{DB: db}
}

// Return all order lines of one client's current demand.
func (s *SqliteOrderLineRepository) ListOrderLines(ctx context.Context, clientID string) ([]*domain.OrderLine, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite order line repository: DB is nil")
	}

	query := `
	SELECT
		sku,
		order_id,
		distribution_center,
		sales_channel,
		pallet_quantity,
		full_pallet_height_cm,
		picking_height_cm,
		weight_kg,
		volume_m3,
		stacking
	FROM order_lines
	WHERE client_id = ?
	ORDER BY sku, order_id;
	`
	rows, err := s.DB.QueryContext(ctx, query, strings.ToLower(strings.TrimSpace(clientID)))
	if err != nil {
		return nil, fmt.Errorf("list order lines: query order_lines table: %w", err)
	}
	defer rows.Close()

	lines := make([]*domain.OrderLine, 0, 64)
	for rows.Next() {
		var sku, orderID, cd, ce, stacking string
		var qty, fullHeight, pickingHeight, weight, volume string
		err := rows.Scan(&sku, &orderID, &cd, &ce, &qty, &fullHeight, &pickingHeight, &weight, &volume, &stacking)
		if err != nil {
			return nil, fmt.Errorf("list order lines: scan row: %w", err)
		}

		line := &domain.OrderLine{
			SKU:                sku,
			OrderID:            orderID,
			DistributionCenter: cd,
			SalesChannel:       ce,
			Stacking:           domain.ParseStackingType(stacking),
		}
		for _, field := range []struct {
			name string
			raw  string
			dst  *decimal.Decimal
		}{
			{"pallet_quantity", qty, &line.PalletQuantity},
			{"full_pallet_height_cm", fullHeight, &line.FullPalletHeightCm},
			{"picking_height_cm", pickingHeight, &line.PickingHeightCm},
			{"weight_kg", weight, &line.WeightKg},
			{"volume_m3", volume, &line.VolumeM3},
		} {
			d, err := decimal.NewFromString(field.raw)
			if err != nil {
				return nil, fmt.Errorf("list order lines: line %s/%s: parse %s %q: %w", orderID, sku, field.name, field.raw, err)
			}
			*field.dst = d
		}

		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list order lines: row iteration: %w", err)
	}

	return lines, nil
}
