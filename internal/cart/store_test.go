package cart

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecomarket/storefront/pkg/kv"
	"github.com/ecomarket/storefront/pkg/logger"
)

type memoryKV struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemoryKV() *memoryKV {
	return &memoryKV{data: map[string]string{}}
}

func (m *memoryKV) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.data[key]
	if !ok {
		return "", kv.ErrNotFound
	}
	return value, nil
}

func (m *memoryKV) Set(_ context.Context, key, value string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memoryKV) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test"})
}

func TestStore_LoadMissingIsEmpty(t *testing.T) {
	t.Parallel()

	store := NewStore(newMemoryKV(), time.Hour, testLogger())

	c := store.Load(context.Background(), "sid-1")
	assert.True(t, c.Empty())
	assert.Equal(t, 0, c.Count())
}

func TestStore_SaveThenLoad(t *testing.T) {
	t.Parallel()

	store := NewStore(newMemoryKV(), time.Hour, testLogger())
	ctx := context.Background()

	saved := Add(Cart{}, line(1, "42.00", 2))
	require.NoError(t, store.Save(ctx, "sid-1", saved))

	loaded := store.Load(ctx, "sid-1")
	require.Len(t, loaded.Lines, 1)
	assert.True(t, loaded.Total().Equal(saved.Total()))
}

func TestStore_CartsAreSessionScoped(t *testing.T) {
	t.Parallel()

	store := NewStore(newMemoryKV(), time.Hour, testLogger())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "sid-1", Add(Cart{}, line(1, "10.00", 1))))

	assert.True(t, store.Load(ctx, "sid-2").Empty())
	assert.False(t, store.Load(ctx, "sid-1").Empty())
}

func TestStore_CorruptRecordIsEmptyCart(t *testing.T) {
	t.Parallel()

	backing := newMemoryKV()
	store := NewStore(backing, time.Hour, testLogger())
	ctx := context.Background()

	require.NoError(t, backing.Set(ctx, "cart:sid-1", "{broken", 0))

	assert.True(t, store.Load(ctx, "sid-1").Empty())
}

func TestStore_Clear(t *testing.T) {
	t.Parallel()

	store := NewStore(newMemoryKV(), time.Hour, testLogger())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "sid-1", Add(Cart{}, line(1, "10.00", 1))))
	require.NoError(t, store.Clear(ctx, "sid-1"))

	assert.True(t, store.Load(ctx, "sid-1").Empty())
}
