package repository

import (
	"context"
	"errors"

	"github.com/sattamap/mechkeys-server/internal/domain"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrCartItemNotFound  = errors.New("cart item not found")
	ErrInsufficientStock = errors.New("not enough stock available")
)

// IsDuplicateKey reports whether err is a unique-index violation.
func IsDuplicateKey(err error) bool {
	return err != nil && mongo.IsDuplicateKeyError(err)
}

// ProductRepository defines the interface for catalog data operations.
// Consumers define this interface, not the MongoDB implementation.
type ProductRepository interface {
	Insert(ctx context.Context, product *domain.Product) (string, error)
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
}

// CartRepository defines the interface for cart data operations.
type CartRepository interface {
	// IncrementQuantity atomically adds delta to the item's quantity as long
	// as the result stays within maxQuantity. Returns ErrCartItemNotFound if
	// no item exists for the product, ErrInsufficientStock if the cap would
	// be exceeded.
	IncrementQuantity(ctx context.Context, productID string, delta, maxQuantity int) (*domain.CartItem, error)
	Insert(ctx context.Context, item *domain.CartItem) error
	SetQuantity(ctx context.Context, productID string, quantity int) (*domain.CartItem, error)
	Remove(ctx context.Context, productID string) error
	ListJoined(ctx context.Context) ([]domain.CartEntry, error)
}

// OrderRepository defines the interface for order data operations.
type OrderRepository interface {
	Insert(ctx context.Context, order *domain.Order) (*domain.Order, error)
}
