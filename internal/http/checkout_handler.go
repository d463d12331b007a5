package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/fjod/swiftrail/domain"
	"github.com/fjod/swiftrail/internal/service"
)

type CheckoutHandler struct {
	checkout service.CheckoutService
	carts    CartService
	log      *slog.Logger
	timeout  time.Duration
}

func NewCheckoutHandler(checkout service.CheckoutService, carts CartService, log *slog.Logger, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		carts:    carts,
		log:      log,
		timeout:  timeout,
	}
}

// POST /api/v1/checkout
//
// An empty email falls back to the authenticated user, and an empty item list
// to that user's stored cart. The cart cleared afterwards is always the
// authenticated user's, whatever email the confirmation goes to.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req domain.CheckoutRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	user := getUserEmailFromContext(r.Context())
	req.UserEmail = user
	if req.Email == "" {
		req.Email = user
	}
	if len(req.Items) == 0 && user != "" {
		cart, err := h.carts.GetCart(ctx, user)
		if err != nil {
			handleServiceError(w, err)
			return
		}
		req.Items = cart
	}

	outcome, err := h.checkout.Checkout(ctx, &req)
	if err != nil {
		var vErr *service.ValidationError
		var dErr *service.DeliveryError
		switch {
		case errors.As(err, &vErr) || outcome == nil:
			handleServiceError(w, err)
		case errors.As(err, &dErr):
			h.log.WarnContext(ctx, "checkout delivery failed",
				"request_id", getRequestID(r.Context()),
				"reference", outcome.OrderReference,
				"error", err,
			)
			respondJSON(w, http.StatusBadGateway, outcome)
		default:
			respondJSON(w, http.StatusInternalServerError, outcome)
		}
		return
	}

	status := http.StatusCreated
	if outcome.Status == domain.OutcomeDegraded {
		status = http.StatusAccepted
	}
	respondJSON(w, status, outcome)
}
