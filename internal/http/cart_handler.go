package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/fjod/swiftrail/domain"
	"github.com/go-chi/chi/v5"
)

type CartService interface {
	GetCart(ctx context.Context, email string) (domain.Cart, error)
	AddItem(ctx context.Context, email string, item domain.Command) (domain.Cart, error)
	SetSeat(ctx context.Context, email string, index int, seat string) (domain.Cart, error)
	RemoveItem(ctx context.Context, email string, index int) (domain.Cart, error)
	RemoveOption(ctx context.Context, email string, index int, option domain.Option) (domain.Cart, error)
	Journeys(ctx context.Context, email string) ([]domain.JourneyView, error)
	Summary(ctx context.Context, email string) (*domain.CartSummary, error)
}

type CartHandler struct {
	carts   CartService
	timeout time.Duration
}

func NewCartHandler(carts CartService, timeout time.Duration) *CartHandler {
	return &CartHandler{
		carts:   carts,
		timeout: timeout,
	}
}

type AddItemRequestDTO struct {
	Trip    *domain.Trip    `json:"travel_info"`
	Options []domain.Option `json:"options"`
	Seat    string          `json:"seat"`
}

type SetSeatRequestDTO struct {
	Seat string `json:"seat"`
}

// GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	email := getUserEmailFromContext(r.Context())
	if email == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	summary, err := h.carts.Summary(ctx, email)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	email := getUserEmailFromContext(r.Context())
	if email == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req AddItemRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	cart, err := h.carts.AddItem(ctx, email, domain.Command{Trip: req.Trip, Options: req.Options, Seat: req.Seat})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, cart)
}

// PUT /api/v1/cart/items/{index}/seat
func (h *CartHandler) SetSeat(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	email := getUserEmailFromContext(r.Context())
	if email == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	index, ok := itemIndex(w, r)
	if !ok {
		return
	}

	var req SetSeatRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	cart, err := h.carts.SetSeat(ctx, email, index, req.Seat)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, cart)
}

// DELETE /api/v1/cart/items/{index}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	email := getUserEmailFromContext(r.Context())
	if email == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	index, ok := itemIndex(w, r)
	if !ok {
		return
	}

	cart, err := h.carts.RemoveItem(ctx, email, index)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, cart)
}

// DELETE /api/v1/cart/items/{index}/options/{code}
func (h *CartHandler) RemoveOption(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	email := getUserEmailFromContext(r.Context())
	if email == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	index, ok := itemIndex(w, r)
	if !ok {
		return
	}

	code := chi.URLParam(r, "code")
	if code == "" {
		respondError(w, http.StatusBadRequest, "missing_option", "option code is required")
		return
	}

	cart, err := h.carts.RemoveOption(ctx, email, index, domain.Option(code))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, cart)
}

// GET /api/v1/cart/journeys
func (h *CartHandler) Journeys(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	email := getUserEmailFromContext(r.Context())
	if email == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	journeys, err := h.carts.Journeys(ctx, email)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, journeys)
}

func itemIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		respondError(w, http.StatusBadRequest, "invalid_index", "index must be a non-negative integer")
		return 0, false
	}
	return index, true
}
