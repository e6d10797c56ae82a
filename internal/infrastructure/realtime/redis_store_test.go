package realtime

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appzeto/food-admin/internal/core/domain"
	"github.com/appzeto/food-admin/internal/core/ports"
	redisdb "github.com/appzeto/food-admin/internal/infrastructure/db/redis"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client), mr
}

func TestRedisStore_Contract(t *testing.T) {
	runStoreContract(t, func(t *testing.T) ports.RealtimeStore {
		s, _ := newTestRedisStore(t)
		return s
	})
}

func TestRedisStore_Layout(t *testing.T) {
	s, mr := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, s.Update(ctx, "delivery_boys/b1", domain.Record{"status": "online", "lat": 22.5}))

	raw := mr.HGet("rtdb:delivery_boys", "b1")
	assert.JSONEq(t, `{"status":"online","lat":22.5}`, raw)
}

func TestRedisStore_RejectsDeepPaths(t *testing.T) {
	s, _ := newTestRedisStore(t)

	err := s.Set(context.Background(), "users/u1/address", domain.Record{"city": "Pune"})
	assert.ErrorIs(t, err, ErrUnsupportedPath)
}

func TestRedisStore_ConcurrentUpdatesKeepAllFields(t *testing.T) {
	s, _ := newTestRedisStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.Update(ctx, "active_orders/o1", domain.Record{fmt.Sprintf("f%d", i): float64(i)})
		}(i)
	}
	wg.Wait()

	rec, err := s.Get(ctx, "active_orders/o1")
	require.NoError(t, err)
	assert.Len(t, rec, 4)
}

func TestRedisConnector(t *testing.T) {
	ctx := context.Background()

	_, err := RedisConnector(redisdb.Config{})(ctx)
	assert.ErrorIs(t, err, ErrNotConfigured)

	mr := miniredis.RunT(t)
	store, err := RedisConnector(redisdb.Config{Addr: mr.Addr()})(ctx)
	require.NoError(t, err)
	assert.IsType(t, &RedisStore{}, store)
}
