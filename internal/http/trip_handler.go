package http

import (
	"context"
	"net/http"
	"time"

	"github.com/fjod/swiftrail/domain"
)

type TripService interface {
	Search(ctx context.Context, departure, arrival, date string) ([]domain.Trip, error)
	Generate(ctx context.Context, req domain.GenerateTripsRequest) (*domain.GenerateTripsResult, error)
}

type TripHandler struct {
	trips   TripService
	timeout time.Duration
}

func NewTripHandler(trips TripService, timeout time.Duration) *TripHandler {
	return &TripHandler{
		trips:   trips,
		timeout: timeout,
	}
}

// GET /api/v1/trips?departure=&arrival=&date=
func (h *TripHandler) SearchTrips(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	q := r.URL.Query()
	trips, err := h.trips.Search(ctx, q.Get("departure"), q.Get("arrival"), q.Get("date"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, trips)
}

// POST /api/v1/trips/generate
func (h *TripHandler) GenerateTrips(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req domain.GenerateTripsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	result, err := h.trips.Generate(ctx, req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, result)
}
