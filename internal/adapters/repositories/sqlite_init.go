package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createClientsQuery := `
	CREATE TABLE IF NOT EXISTS clients (
		client_id TEXT PRIMARY KEY,
		allows_consolidation INTEGER NOT NULL,
		max_distinct_skus INTEGER NOT NULL,
		max_height_cm TEXT NOT NULL,
		capacity_positions INTEGER NOT NULL,
		max_weight_kg TEXT NOT NULL,
		max_volume_m3 TEXT NOT NULL
	);
	`

	createBackhaulCDsQuery := `
	CREATE TABLE IF NOT EXISTS client_backhaul_cds (
		client_id TEXT NOT NULL,
		distribution_center TEXT NOT NULL,
		PRIMARY KEY (client_id, distribution_center)
	);
	`

	createOrderLinesQuery := `
	CREATE TABLE IF NOT EXISTS order_lines (
		client_id TEXT NOT NULL,
		sku TEXT NOT NULL,
		order_id TEXT NOT NULL,
		distribution_center TEXT NOT NULL,
		sales_channel TEXT NOT NULL,
		pallet_quantity TEXT NOT NULL,
		full_pallet_height_cm TEXT NOT NULL,
		picking_height_cm TEXT NOT NULL,
		weight_kg TEXT NOT NULL,
		volume_m3 TEXT NOT NULL,
		stacking TEXT NOT NULL,
		PRIMARY KEY (client_id, sku, order_id)
	);
	`

	createPlanSnapshotsQuery := `
	CREATE TABLE IF NOT EXISTS plan_snapshots (
		plan_id TEXT PRIMARY KEY,
		snapshot BLOB NOT NULL,
		created_at TEXT NOT NULL DEFAULT (datetime('now'))
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_order_lines_client
	ON order_lines(client_id, sku, order_id);
	`

	statements := []string{
		createClientsQuery,
		createBackhaulCDsQuery,
		createOrderLinesQuery,
		createPlanSnapshotsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type ClientSeed struct {
	ClientID            string   `json:"client_id"`
	AllowsConsolidation bool     `json:"allows_consolidation"`
	MaxDistinctSKUs     int      `json:"max_distinct_skus"`
	MaxHeightCm         string   `json:"max_height_cm"`
	CapacityPositions   int      `json:"capacity_positions"`
	MaxWeightKg         string   `json:"max_weight_kg"`
	MaxVolumeM3         string   `json:"max_volume_m3"`
	BackhaulCDs         []string `json:"backhaul_cds"`
}

type OrderLineSeed struct {
	ClientID           string `json:"client_id"`
	SKU                string `json:"sku"`
	OrderID            string `json:"order_id"`
	DistributionCenter string `json:"distribution_center"`
	SalesChannel       string `json:"sales_channel"`
	PalletQuantity     string `json:"pallet_quantity"`
	FullPalletHeightCm string `json:"full_pallet_height_cm"`
	PickingHeightCm    string `json:"picking_height_cm"`
	WeightKg           string `json:"weight_kg"`
	VolumeM3           string `json:"volume_m3"`
	Stacking           string `json:"stacking"`
}

type SeedFile struct {
	Clients    []ClientSeed    `json:"clients"`
	OrderLines []OrderLineSeed `json:"order_lines"`
}

// Populate the database with client policies and order lines from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed: read %q: %w", jsonPath, err)
	}

	var data SeedFile
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed: parse json: %w", err)
	}

	for i, c := range data.Clients {
		if strings.TrimSpace(c.ClientID) == "" {
			return fmt.Errorf("seed: client at index %d: client_id cannot be empty", i+1)
		}
		for _, field := range []string{c.MaxHeightCm, c.MaxWeightKg, c.MaxVolumeM3} {
			if _, err := decimal.NewFromString(field); err != nil {
				return fmt.Errorf("seed: client %q: invalid decimal %q: %w", c.ClientID, field, err)
			}
		}
	}

	for i, l := range data.OrderLines {
		if strings.TrimSpace(l.SKU) == "" || strings.TrimSpace(l.OrderID) == "" {
			return fmt.Errorf("seed: order line at index %d: sku and order_id cannot be empty", i+1)
		}
		qty, err := decimal.NewFromString(l.PalletQuantity)
		if err != nil {
			return fmt.Errorf("seed: order line %s/%s: invalid pallet_quantity %q: %w", l.OrderID, l.SKU, l.PalletQuantity, err)
		}
		if qty.IsNegative() {
			return fmt.Errorf("seed: order line %s/%s: pallet_quantity cannot be negative", l.OrderID, l.SKU)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed: begin tx: %w", err)
	}
	defer tx.Rollback()

	clientStmt, err := tx.Prepare(`
	INSERT OR REPLACE INTO clients (
		client_id,
		allows_consolidation,
		max_distinct_skus,
		max_height_cm,
		capacity_positions,
		max_weight_kg,
		max_volume_m3
	)
	VALUES (?, ?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed: prepare client insert: %w", err)
	}
	defer clientStmt.Close()

	backhaulStmt, err := tx.Prepare(`
	INSERT OR REPLACE INTO client_backhaul_cds (client_id, distribution_center)
	VALUES (?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed: prepare backhaul insert: %w", err)
	}
	defer backhaulStmt.Close()

	lineStmt, err := tx.Prepare(`
	INSERT OR REPLACE INTO order_lines (
		client_id,
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
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed: prepare order line insert: %w", err)
	}
	defer lineStmt.Close()

	for _, c := range data.Clients {
		id := strings.ToLower(strings.TrimSpace(c.ClientID))
		allows := 0
		if c.AllowsConsolidation {
			allows = 1
		}
		if _, err := clientStmt.Exec(id, allows, c.MaxDistinctSKUs, c.MaxHeightCm, c.CapacityPositions, c.MaxWeightKg, c.MaxVolumeM3); err != nil {
			return fmt.Errorf("seed: insert client %q: %w", id, err)
		}
		for _, cd := range c.BackhaulCDs {
			if _, err := backhaulStmt.Exec(id, strings.TrimSpace(cd)); err != nil {
				return fmt.Errorf("seed: insert backhaul cd for %q: %w", id, err)
			}
		}
	}

	for _, l := range data.OrderLines {
		clientID := strings.ToLower(strings.TrimSpace(l.ClientID))
		if _, err := lineStmt.Exec(
			clientID,
			l.SKU,
			l.OrderID,
			l.DistributionCenter,
			l.SalesChannel,
			l.PalletQuantity,
			l.FullPalletHeightCm,
			l.PickingHeightCm,
			l.WeightKg,
			l.VolumeM3,
			l.Stacking,
		); err != nil {
			return fmt.Errorf("seed: insert order line %s/%s: %w", l.OrderID, l.SKU, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit tx: %w", err)
	}

	return nil
}
