package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/sattamap/mechkeys-server/internal/cache"
	"github.com/sattamap/mechkeys-server/internal/domain"
	"github.com/sattamap/mechkeys-server/internal/repository"
	"golang.org/x/sync/singleflight"
)

type CartService struct {
	products repository.ProductRepository
	carts    repository.CartRepository
	cache    cache.CartViewCache
	sfg      singleflight.Group // Prevents cache stampede
}

func NewCartService(products repository.ProductRepository, carts repository.CartRepository, cache cache.CartViewCache) *CartService {
	return &CartService{
		products: products,
		carts:    carts,
		cache:    cache,
	}
}

// AddItem accumulates quantity onto an existing cart line or inserts a new
// one. The combined quantity never exceeds the product's current stock: the
// increment is a single conditional update in the repository, so concurrent
// adds for the same product cannot overshoot between a read and a write.
func (s *CartService) AddItem(ctx context.Context, productID string, quantity int) error {
	product, err := s.products.Get(ctx, productID)
	if err != nil {
		return err
	}

	if quantity > product.Quantity {
		return repository.ErrInsufficientStock
	}

	_, err = s.carts.IncrementQuantity(ctx, productID, quantity, product.Quantity)
	if errors.Is(err, repository.ErrCartItemNotFound) {
		err = s.carts.Insert(ctx, &domain.CartItem{
			ProductID: productID,
			Quantity:  quantity,
		})
		if repository.IsDuplicateKey(err) {
			// Lost the race against a concurrent first add; fold into it.
			_, err = s.carts.IncrementQuantity(ctx, productID, quantity, product.Quantity)
		}
	}
	if err != nil {
		log.Printf("repo add item error: %v", err)
		return err
	}

	s.invalidateCache()
	return nil
}

// ListItems returns every cart item joined with its product's public fields.
func (s *CartService) ListItems(ctx context.Context) ([]domain.CartEntry, error) {
	// Use singleflight so concurrent cache misses hit Mongo once.
	v, err, _ := s.sfg.Do("cart-view", func() (interface{}, error) {
		entries, err := s.cache.Get(ctx)
		if err == nil {
			return entries, nil
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("cache get error: %v", err) // log cache error but continue
		}

		entries, err = s.carts.ListJoined(ctx)
		if err != nil {
			return nil, err
		}

		go func() {
			if err := s.cache.Set(context.Background(), entries); err != nil {
				log.Printf("cache set error: %v", err)
			}
		}()

		return entries, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]domain.CartEntry), nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, productID string, quantity int) (*domain.CartItem, error) {
	product, err := s.products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	if quantity > product.Quantity {
		return nil, repository.ErrInsufficientStock
	}

	item, err := s.carts.SetQuantity(ctx, productID, quantity)
	if err != nil {
		return nil, err
	}

	s.invalidateCache()
	return item, nil
}

func (s *CartService) RemoveItem(ctx context.Context, productID string) error {
	if err := s.carts.Remove(ctx, productID); err != nil {
		return err
	}

	s.invalidateCache()
	return nil
}

func (s *CartService) invalidateCache() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Printf("cache invalidate error: %v", err)
	}
}
