package service

import (
	"context"
	"errors"
	"time"

	"github.com/sattamap/mechkeys-server/internal/domain"
	"github.com/sattamap/mechkeys-server/internal/repository"
)

var ErrAllFieldsRequired = errors.New("all fields are required")

type OrderService struct {
	orders repository.OrderRepository
}

func NewOrderService(orders repository.OrderRepository) *OrderService {
	return &OrderService{
		orders: orders,
	}
}

// Place validates the order, stamps the server-side creation time and inserts
// it. Nothing is written when validation fails. An order keeps no link to the
// cart: it neither clears cart items nor decrements product stock.
func (s *OrderService) Place(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if order.Name == "" ||
		order.Email == "" ||
		order.Phone == "" ||
		order.Address == "" ||
		order.PaymentMethod == "" ||
		order.TotalPrice == 0 {
		return nil, ErrAllFieldsRequired
	}

	order.CreatedAt = time.Now()
	return s.orders.Insert(ctx, order)
}
