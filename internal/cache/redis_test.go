package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sattamap/mechkeys-server/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// setupTestRedis creates a miniredis server and returns a RedisCache instance
func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis, func()) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cache := NewRedisCache(client)

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return cache, mr, cleanup
}

func sampleEntries() []domain.CartEntry {
	return []domain.CartEntry{
		{
			ID:        primitive.NewObjectID(),
			ProductID: primitive.NewObjectID().Hex(),
			Quantity:  2,
			Product:   domain.CartProduct{Name: "Keycap A", Price: 10, Quantity: 5, Brand: "KeyCo"},
		},
	}
}

func TestGet_Miss(t *testing.T) {
	cache, _, cleanup := setupTestRedis(t)
	defer cleanup()

	_, err := cache.Get(context.Background())
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestSetGet_Roundtrip(t *testing.T) {
	cache, _, cleanup := setupTestRedis(t)
	defer cleanup()

	entries := sampleEntries()
	require.NoError(t, cache.Set(context.Background(), entries))

	got, err := cache.Get(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, entries[0].ProductID, got[0].ProductID)
	assert.Equal(t, "Keycap A", got[0].Product.Name)
}

func TestSet_AppliesTTL(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	require.NoError(t, cache.Set(context.Background(), sampleEntries()))

	ttl := mr.TTL(cartViewKey)
	assert.GreaterOrEqual(t, ttl, 15*time.Minute)
	assert.LessOrEqual(t, ttl, 20*time.Minute)

	mr.FastForward(21 * time.Minute)
	_, err := cache.Get(context.Background())
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestGet_CorruptPayload(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	require.NoError(t, mr.Set(cartViewKey, "not json"))

	_, err := cache.Get(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestInvalidate(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	require.NoError(t, cache.Set(context.Background(), sampleEntries()))
	require.True(t, mr.Exists(cartViewKey))

	require.NoError(t, cache.Invalidate(context.Background()))

	_, err := cache.Get(context.Background())
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestStoredPayload_IsJSON(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	entries := sampleEntries()
	require.NoError(t, cache.Set(context.Background(), entries))

	raw, err := mr.Get(cartViewKey)
	require.NoError(t, err)

	var decoded []domain.CartEntry
	require.NoError(t, json.Unmarshal([]byte(raw), &decoded))
	assert.Equal(t, entries[0].Quantity, decoded[0].Quantity)
}
