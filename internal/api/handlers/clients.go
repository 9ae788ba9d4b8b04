package handlers

import (
	"net/http"

	"pallet-consolidation-service/internal/api/dto"
	"pallet-consolidation-service/internal/policy"
)

// ClientHandler exposes read-only client policy endpoints.
type ClientHandler struct {
	Policy *policy.Policy
}

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ids := h.Policy.ClientIDs()
	res := dto.ListClientsResponse{
		Clients: make([]dto.ClientResponse, 0, len(ids)),
	}
	for _, id := range ids {
		cfg, err := h.Policy.Resolve(id)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		res.Clients = append(res.Clients, dto.ClientFromConfig(cfg))
	}

	writeJSON(w, r, http.StatusOK, res)
}
