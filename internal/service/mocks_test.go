package service

import (
	"context"
	"sync"

	"github.com/sattamap/mechkeys-server/internal/cache"
	"github.com/sattamap/mechkeys-server/internal/domain"
	"github.com/sattamap/mechkeys-server/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mockProductRepo struct {
	m        sync.RWMutex
	products map[string]domain.Product
	err      error
}

func newMockProductRepo(products ...domain.Product) *mockProductRepo {
	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID.Hex()] = p
	}
	return &mockProductRepo{products: byID}
}

func (m *mockProductRepo) Insert(_ context.Context, product *domain.Product) (string, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return "", m.err
	}
	product.ID = primitive.NewObjectID()
	m.products[product.ID.Hex()] = *product
	return product.ID.Hex(), nil
}

func (m *mockProductRepo) List(context.Context, domain.ProductFilter) ([]domain.Product, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockProductRepo) Get(_ context.Context, id string) (*domain.Product, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return &p, nil
}

// mockCartRepo mirrors the conditional-update semantics of the Mongo
// implementation: the increment only applies while quantity+delta stays
// within the cap.
type mockCartRepo struct {
	m       sync.RWMutex
	items   map[string]domain.CartItem
	entries []domain.CartEntry
	err     error
}

func newMockCartRepo() *mockCartRepo {
	return &mockCartRepo{items: make(map[string]domain.CartItem)}
}

func (m *mockCartRepo) IncrementQuantity(_ context.Context, productID string, delta, maxQuantity int) (*domain.CartItem, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	item, ok := m.items[productID]
	if !ok {
		return nil, repository.ErrCartItemNotFound
	}
	if item.Quantity > maxQuantity-delta {
		return nil, repository.ErrInsufficientStock
	}
	item.Quantity += delta
	m.items[productID] = item
	return &item, nil
}

func (m *mockCartRepo) Insert(_ context.Context, item *domain.CartItem) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	item.ID = primitive.NewObjectID()
	m.items[item.ProductID] = *item
	return nil
}

func (m *mockCartRepo) SetQuantity(_ context.Context, productID string, quantity int) (*domain.CartItem, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	item, ok := m.items[productID]
	if !ok {
		return nil, repository.ErrCartItemNotFound
	}
	item.Quantity = quantity
	m.items[productID] = item
	return &item, nil
}

func (m *mockCartRepo) Remove(_ context.Context, productID string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.items[productID]; !ok {
		return repository.ErrCartItemNotFound
	}
	delete(m.items, productID)
	return nil
}

func (m *mockCartRepo) ListJoined(context.Context) ([]domain.CartEntry, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.entries, nil
}

func (m *mockCartRepo) quantity(productID string) int {
	m.m.RLock()
	defer m.m.RUnlock()
	return m.items[productID].Quantity
}

func (m *mockCartRepo) has(productID string) bool {
	m.m.RLock()
	defer m.m.RUnlock()
	_, ok := m.items[productID]
	return ok
}

type mockCartCache struct {
	m       sync.RWMutex
	entries []domain.CartEntry
	present bool
	err     error
}

func (m *mockCartCache) Get(context.Context) ([]domain.CartEntry, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	if !m.present {
		return nil, cache.ErrCacheMiss
	}
	return m.entries, nil
}

func (m *mockCartCache) Set(_ context.Context, entries []domain.CartEntry) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.entries = entries
	m.present = true
	return m.err
}

func (m *mockCartCache) Invalidate(context.Context) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.entries = nil
	m.present = false
	return m.err
}

func (m *mockCartCache) cached() bool {
	m.m.RLock()
	defer m.m.RUnlock()
	return m.present
}

type mockOrderRepo struct {
	m        sync.Mutex
	inserted []domain.Order
	err      error
}

func (m *mockOrderRepo) Insert(_ context.Context, order *domain.Order) (*domain.Order, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	persisted := *order
	persisted.ID = primitive.NewObjectID()
	m.inserted = append(m.inserted, persisted)
	return &persisted, nil
}

func (m *mockOrderRepo) count() int {
	m.m.Lock()
	defer m.m.Unlock()
	return len(m.inserted)
}
