package checkout

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecomarket/storefront/internal/cart"
	pkgerrors "github.com/ecomarket/storefront/pkg/errors"
	"github.com/ecomarket/storefront/pkg/kv"
	"github.com/ecomarket/storefront/pkg/logger"
	"github.com/ecomarket/storefront/pkg/upstream"
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

type backendStub struct {
	mu     sync.Mutex
	calls  []backendCall
	result upstream.CheckoutResult
	err    error
}

type backendCall struct {
	input          upstream.CheckoutInput
	idempotencyKey string
}

func (b *backendStub) Checkout(_ context.Context, _ string, input upstream.CheckoutInput, key string) (upstream.CheckoutResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, backendCall{input: input, idempotencyKey: key})
	return b.result, b.err
}

func newFixture(t *testing.T) (Service, *cart.Store, *backendStub) {
	t.Helper()

	logg := logger.New(logger.Options{ServiceName: "test"})
	carts := cart.NewStore(newMemoryKV(), time.Hour, logg)
	backend := &backendStub{result: upstream.CheckoutResult{Message: "order placed", OrderID: 11}}

	svc := NewService(carts, backend, nil, logg).(*service)
	counter := 0
	svc.mintID = func() string {
		counter++
		return fmt.Sprintf("attempt-%d", counter)
	}
	return svc, carts, backend
}

func seedCart(t *testing.T, carts *cart.Store, sessionID string) {
	t.Helper()
	c := cart.Add(cart.Cart{}, cart.Line{
		ProductID: 1,
		Title:     "widget",
		UnitPrice: decimal.RequireFromString("19.99"),
		Quantity:  2,
	})
	require.NoError(t, carts.Save(context.Background(), sessionID, c))
}

func TestSubmit_Preconditions(t *testing.T) {
	t.Parallel()

	svc, carts, backend := newFixture(t)
	ctx := context.Background()

	_, err := svc.Submit(ctx, "sid-1", "tok", 0)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))

	_, err = svc.Submit(ctx, "sid-1", "tok", 7)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))

	assert.Empty(t, backend.calls, "preconditions must fail before any network call")
	_ = carts
}

func TestSubmit_Success(t *testing.T) {
	t.Parallel()

	svc, carts, backend := newFixture(t)
	ctx := context.Background()
	seedCart(t, carts, "sid-1")

	result, err := svc.Submit(ctx, "sid-1", "tok", 7)
	require.NoError(t, err)
	assert.Equal(t, int64(11), result.OrderID)

	require.Len(t, backend.calls, 1)
	call := backend.calls[0]
	assert.Equal(t, int64(7), call.input.AddressID)
	require.Len(t, call.input.Items, 1)
	assert.Equal(t, int64(1), call.input.Items[0].ProductID)
	assert.Equal(t, 2, call.input.Items[0].Quantity)
	assert.NotEmpty(t, call.idempotencyKey)

	assert.True(t, carts.Load(ctx, "sid-1").Empty(), "successful checkout empties the cart")
}

func TestSubmit_FailureRetainsCart(t *testing.T) {
	t.Parallel()

	svc, carts, backend := newFixture(t)
	ctx := context.Background()
	seedCart(t, carts, "sid-1")
	backend.err = pkgerrors.New(pkgerrors.CodeValidation, "insufficient stock")

	_, err := svc.Submit(ctx, "sid-1", "tok", 7)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))

	assert.False(t, carts.Load(ctx, "sid-1").Empty(), "failed checkout leaves the cart intact")
}

func TestSubmit_RetryReplaysIdempotencyKey(t *testing.T) {
	t.Parallel()

	svc, carts, backend := newFixture(t)
	ctx := context.Background()
	seedCart(t, carts, "sid-1")
	backend.err = pkgerrors.New(pkgerrors.CodeUpstream, "timeout")

	_, err := svc.Submit(ctx, "sid-1", "tok", 7)
	require.Error(t, err)
	_, err = svc.Submit(ctx, "sid-1", "tok", 7)
	require.Error(t, err)

	require.Len(t, backend.calls, 2)
	assert.Equal(t, backend.calls[0].idempotencyKey, backend.calls[1].idempotencyKey,
		"a retry of the same cart replays the same key")
}

func TestSubmit_MutationMintsFreshKey(t *testing.T) {
	t.Parallel()

	svc, carts, backend := newFixture(t)
	ctx := context.Background()
	seedCart(t, carts, "sid-1")
	backend.err = pkgerrors.New(pkgerrors.CodeUpstream, "timeout")

	_, err := svc.Submit(ctx, "sid-1", "tok", 7)
	require.Error(t, err)

	// Changing the cart invalidates the pending attempt.
	mutated := cart.Add(carts.Load(ctx, "sid-1"), cart.Line{
		ProductID: 2,
		UnitPrice: decimal.NewFromInt(5),
		Quantity:  1,
	})
	require.NoError(t, carts.Save(ctx, "sid-1", mutated))

	_, err = svc.Submit(ctx, "sid-1", "tok", 7)
	require.Error(t, err)

	require.Len(t, backend.calls, 2)
	assert.NotEqual(t, backend.calls[0].idempotencyKey, backend.calls[1].idempotencyKey,
		"a mutated cart must not reuse the old key")
}
