package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"pallet-consolidation-service/internal/adapters/repositories"
	"pallet-consolidation-service/internal/api"
	"pallet-consolidation-service/internal/config"
	"pallet-consolidation-service/internal/policy"
)

// main is the application composition root.
// It wires concrete adapters (SQLite) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	seedPath := config.Get("SEED_PATH", "")
	port := config.Get("PORT", "8080")

	db, err := openDB(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := repositories.InitSchema(db); err != nil {
		log.Fatal(err)
	}
	// Seed local demo data only when a seed file is configured.
	if seedPath != "" {
		if err := repositories.SeedFromJSON(db, seedPath); err != nil {
			log.Fatal(err)
		}
	}

	pol, err := loadPolicy(db)
	if err != nil {
		log.Fatal(err)
	}

	orders := repositories.NewSqliteOrderLineRepository(db)
	snapshots := repositories.NewSqlitePlanStore(db)
	router := api.NewRouter(orders, snapshots, pol)

	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func openDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}

// loadPolicy reads client configurations from the database, falling
// back to the built-in client table when none are stored.
func loadPolicy(db *sql.DB) (*policy.Policy, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	clients := repositories.NewSqliteClientRepository(db)
	configs, err := clients.ListClientConfigs(ctx)
	if err != nil {
		return nil, fmt.Errorf("load policy: %w", err)
	}
	if len(configs) == 0 {
		log.Println("No clients stored, using built-in client table")
		return policy.Builtin(), nil
	}

	log.Printf("Loaded client configurations count=%d", len(configs))
	return policy.New(configs), nil
}
