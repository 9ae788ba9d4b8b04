package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"pallet-consolidation-service/internal/api/dto"
	"pallet-consolidation-service/internal/platform/obs"
	"pallet-consolidation-service/internal/policy"
	"pallet-consolidation-service/internal/ports"
	"pallet-consolidation-service/internal/services"
)

type PlanHandler struct {
	Orders    ports.OrderLineRepository
	Snapshots ports.PlanSnapshotStore
	Policy    *policy.Policy
}

// Build orchestrates the full planning pipeline for one client and
// commits the result as the plan's initial snapshot, so later edits can
// always be reset against it.
func (h *PlanHandler) Build(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.BuildPlanRequest
	defer r.Body.Close()
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if strings.TrimSpace(req.ClientID) == "" {
		writeError(w, r, http.StatusBadRequest, "client_id is required")
		return
	}
	if req.CapacityPositions < 0 || req.CapacityPositions > 100 {
		writeError(w, r, http.StatusBadRequest, "capacity_positions must be between 0 and 100")
		return
	}

	svcReq := services.BuildPlanRequest{
		ClientID:          req.ClientID,
		Strategy:          req.Strategy,
		CapacityPositions: req.CapacityPositions,
	}

	var err error
	defer obs.Time(r.Context(), "build_plan")(&err)

	plan, err := services.BuildPlan(r.Context(), svcReq, h.Orders, h.Policy)
	if err != nil {
		if errors.Is(err, services.ErrUnknownStrategy) {
			writeError(w, r, http.StatusBadRequest, "strategy must be binpacking or vcu")
			return
		}
		writeDomainError(w, r, err)
		return
	}

	snapshot := dto.PlanFromDomain(plan)
	planID := uuid.NewString()

	raw, err := json.Marshal(snapshot)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	if err = h.Snapshots.SaveSnapshot(r.Context(), planID, raw); err != nil {
		log.Printf("save snapshot failed: plan_id=%s err=%v", planID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.BuildPlanResponse{
		PlanID: planID,
		Plan:   snapshot,
		Stats:  services.ComputeStatistics(plan),
	}
	writeJSON(w, r, http.StatusOK, res)
}

// Initial returns the snapshot committed when the plan was first built.
func (h *PlanHandler) Initial(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	planID := strings.TrimSpace(r.URL.Query().Get("plan_id"))
	if planID == "" {
		writeError(w, r, http.StatusBadRequest, "plan_id is required")
		return
	}

	raw, found, err := h.Snapshots.GetSnapshot(r.Context(), planID)
	if err != nil {
		log.Printf("get snapshot failed: plan_id=%s err=%v", planID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	if !found {
		writeError(w, r, http.StatusNotFound, "unknown plan: "+planID)
		return
	}

	var snapshot dto.PlanSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		log.Printf("decode snapshot failed: plan_id=%s err=%v", planID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	plan, err := snapshot.ToDomain()
	if err != nil {
		log.Printf("rebuild snapshot failed: plan_id=%s err=%v", planID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.PlanEditResponse{
		Plan:  snapshot,
		Stats: services.ComputeStatistics(plan),
	}
	writeJSON(w, r, http.StatusOK, res)
}
