package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"pallet-consolidation-service/internal/domain"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeDomainError maps the planning error taxonomy onto HTTP statuses:
// unknown references are 404, rejected edits are 409, exhausted compute
// budget is 503. Anything unrecognized is an internal error.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		unknownClient   *domain.UnknownClientError
		unknownTruck    *domain.UnknownTruckError
		unknownFragment *domain.UnknownFragmentError
		badRoute        *domain.IncompatibleRouteError
		overCapacity    *domain.CapacityExceededError
		tooTall         *domain.FragmentTooTallError
		timedOut        *domain.ComputationTimeoutError
	)

	switch {
	case errors.As(err, &unknownClient):
		writeError(w, r, http.StatusNotFound, unknownClient.Error())
	case errors.As(err, &unknownTruck):
		writeError(w, r, http.StatusNotFound, unknownTruck.Error())
	case errors.As(err, &unknownFragment):
		writeError(w, r, http.StatusNotFound, unknownFragment.Error())
	case errors.As(err, &badRoute):
		writeError(w, r, http.StatusConflict, badRoute.Error())
	case errors.As(err, &overCapacity):
		writeError(w, r, http.StatusConflict, overCapacity.Error())
	case errors.As(err, &tooTall):
		writeError(w, r, http.StatusConflict, tooTall.Error())
	case errors.As(err, &timedOut):
		writeError(w, r, http.StatusServiceUnavailable, timedOut.Error())
	default:
		log.Printf("request failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

// decodeStrict decodes exactly one JSON object from the body, rejecting
// unknown fields and trailing content.
func decodeStrict(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return errors.New("invalid json body")
	}
	if dec.More() {
		return errors.New("body must contain only one JSON object")
	}
	return nil
}
