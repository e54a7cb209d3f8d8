package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sattamap/mechkeys-server/internal/domain"
)

// OrderService is the slice of order behavior the HTTP layer needs.
type OrderService interface {
	Place(ctx context.Context, order *domain.Order) (*domain.Order, error)
}

type OrderHandler struct {
	orders  OrderService
	timeout time.Duration
}

func NewOrderHandler(orders OrderService, timeout time.Duration) *OrderHandler {
	return &OrderHandler{
		orders:  orders,
		timeout: timeout,
	}
}

// POST /api/orders
func (h *OrderHandler) Place(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var order domain.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	placed, err := h.orders.Place(ctx, &order)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, placed)
}
