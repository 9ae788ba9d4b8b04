package api

import (
	"net/http"

	"pallet-consolidation-service/internal/api/handlers"
	"pallet-consolidation-service/internal/policy"
	"pallet-consolidation-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(orders ports.OrderLineRepository, snapshots ports.PlanSnapshotStore, pol *policy.Policy) http.Handler {
	mux := http.NewServeMux()

	clientHandler := &handlers.ClientHandler{Policy: pol}
	planHandler := &handlers.PlanHandler{
		Orders:    orders,
		Snapshots: snapshots,
		Policy:    pol,
	}
	reassignHandler := &handlers.ReassignHandler{Policy: pol}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/clients", clientHandler.List)
	mux.HandleFunc("/plans", planHandler.Build)
	mux.HandleFunc("/plans/initial", planHandler.Initial)
	mux.HandleFunc("/plans/move-orders", reassignHandler.MoveOrders)
	mux.HandleFunc("/plans/add-truck", reassignHandler.AddTruck)
	mux.HandleFunc("/plans/delete-truck", reassignHandler.DeleteTruck)
	mux.HandleFunc("/plans/stats", reassignHandler.Stats)

	return loggingMiddleware(mux)
}
