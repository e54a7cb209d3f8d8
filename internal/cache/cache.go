package cache

import (
	"context"
	"errors"

	"github.com/sattamap/mechkeys-server/internal/domain"
)

type CartViewCache interface {
	Get(ctx context.Context) ([]domain.CartEntry, error)
	Set(ctx context.Context, entries []domain.CartEntry) error
	Invalidate(ctx context.Context) error
}

var ErrCacheMiss = errors.New("cache miss")
