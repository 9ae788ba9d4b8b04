package handlers

import (
	"net/http"
	"strings"

	"pallet-consolidation-service/internal/api/dto"
	"pallet-consolidation-service/internal/domain"
	"pallet-consolidation-service/internal/platform/obs"
	"pallet-consolidation-service/internal/policy"
	"pallet-consolidation-service/internal/services"
)

// ReassignHandler exposes the interactive plan edit operations. Every
// operation takes the current snapshot in the request body and returns
// the transformed snapshot; a rejected edit returns an error status and
// leaves the caller's snapshot valid.
type ReassignHandler struct {
	Policy *policy.Policy
}

func (h *ReassignHandler) MoveOrders(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.MoveOrdersRequest
	defer r.Body.Close()
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.FragmentIDs) == 0 {
		writeError(w, r, http.StatusBadRequest, "fragment_ids cannot be empty")
		return
	}

	cfg, plan, ok := h.resolveEdit(w, r, req.ClientID, req.Plan)
	if !ok {
		return
	}

	var err error
	defer obs.Time(r.Context(), "move_orders")(&err)

	next, err := services.MoveOrders(plan, req.FragmentIDs, strings.TrimSpace(req.TargetTruckID), cfg)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeEditResult(w, r, next)
}

func (h *ReassignHandler) AddTruck(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.AddTruckRequest
	defer r.Body.Close()
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.DistributionCenters) == 0 || len(req.SalesChannels) == 0 {
		writeError(w, r, http.StatusBadRequest, "distribution_centers and sales_channels are required")
		return
	}

	cfg, plan, ok := h.resolveEdit(w, r, req.ClientID, req.Plan)
	if !ok {
		return
	}

	// An absent route type lets the service derive it from the CDs.
	var routeType domain.RouteType
	if strings.TrimSpace(req.RouteType) != "" {
		routeType = domain.ParseRouteType(req.RouteType)
	}

	var err error
	defer obs.Time(r.Context(), "add_truck")(&err)

	next, err := services.AddTruck(plan, req.DistributionCenters, req.SalesChannels, routeType, cfg)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeEditResult(w, r, next)
}

func (h *ReassignHandler) DeleteTruck(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.DeleteTruckRequest
	defer r.Body.Close()
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.TruckID) == "" {
		writeError(w, r, http.StatusBadRequest, "truck_id is required")
		return
	}

	_, plan, ok := h.resolveEdit(w, r, req.ClientID, req.Plan)
	if !ok {
		return
	}

	var err error
	defer obs.Time(r.Context(), "delete_truck")(&err)

	next, err := services.DeleteTruck(plan, strings.TrimSpace(req.TruckID))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeEditResult(w, r, next)
}

// Stats recomputes aggregate metrics for a snapshot without changing it.
func (h *ReassignHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.StatsRequest
	defer r.Body.Close()
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	plan, err := req.Plan.ToDomain()
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, r, http.StatusOK, services.ComputeStatistics(plan))
}

func requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return true
}

// resolveEdit resolves the client policy and rebuilds the domain plan
// from the request snapshot.
func (h *ReassignHandler) resolveEdit(
	w http.ResponseWriter,
	r *http.Request,
	clientID string,
	snapshot dto.PlanSnapshot,
) (policy.ClientConfig, *domain.Plan, bool) {
	cfg, err := h.Policy.Resolve(clientID)
	if err != nil {
		writeDomainError(w, r, err)
		return policy.ClientConfig{}, nil, false
	}

	plan, err := snapshot.ToDomain()
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return policy.ClientConfig{}, nil, false
	}

	return cfg, plan, true
}

func writeEditResult(w http.ResponseWriter, r *http.Request, plan *domain.Plan) {
	res := dto.PlanEditResponse{
		Plan:  dto.PlanFromDomain(plan),
		Stats: services.ComputeStatistics(plan),
	}
	writeJSON(w, r, http.StatusOK, res)
}
