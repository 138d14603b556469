package kv

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Store.Get when the key has no value.
var ErrNotFound = errors.New("kv: key not found")

// Store is the session-scoped key-value persistence surface. It plays the
// role browser storage plays for a single-page app: opaque string records
// under fixed keys, overwritten in full on every write.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Pinger exposes the health-check surface of a Store implementation.
type Pinger interface {
	Ping(ctx context.Context) error
}
