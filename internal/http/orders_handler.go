package http

import (
	"context"
	"net/http"
	"time"

	"github.com/fjod/swiftrail/domain"
	"github.com/go-chi/chi/v5"
)

type OrderService interface {
	OrderHistory(ctx context.Context, email string) ([]domain.Order, error)
	ResendConfirmation(ctx context.Context, orderRef string) (string, error)
}

type OrdersHandler struct {
	orders  OrderService
	timeout time.Duration
}

func NewOrdersHandler(orders OrderService, timeout time.Duration) *OrdersHandler {
	return &OrdersHandler{
		orders:  orders,
		timeout: timeout,
	}
}

type ResendResponseDTO struct {
	Reference  string `json:"reference"`
	DeliveryID string `json:"delivery_id"`
}

// GET /api/v1/orders?email=
func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	email := r.URL.Query().Get("email")
	if email == "" {
		email = getUserEmailFromContext(r.Context())
	}

	orders, err := h.orders.OrderHistory(ctx, email)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, orders)
}

// POST /api/v1/orders/{reference}/resend
func (h *OrdersHandler) ResendConfirmation(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	ref := chi.URLParam(r, "reference")
	if ref == "" {
		respondError(w, http.StatusBadRequest, "missing_reference", "reference is required")
		return
	}

	id, err := h.orders.ResendConfirmation(ctx, ref)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, ResendResponseDTO{Reference: ref, DeliveryID: id})
}
