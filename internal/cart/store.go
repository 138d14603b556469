package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ecomarket/storefront/pkg/kv"
	"github.com/ecomarket/storefront/pkg/logger"
)

// Store persists one cart record per session. Saves always write the whole
// cart; there are no partial updates, so concurrent writers settle on
// last-write-wins for the full record.
type Store struct {
	kv     kv.Store
	ttl    time.Duration
	logger *logger.Logger
}

func NewStore(store kv.Store, ttl time.Duration, logg *logger.Logger) *Store {
	return &Store{kv: store, ttl: ttl, logger: logg}
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}

// Load returns the session's cart. A missing record is an empty cart. A
// record that cannot be decoded is logged and also treated as empty, so one
// corrupt entry cannot lock a shopper out of the store.
func (s *Store) Load(ctx context.Context, sessionID string) Cart {
	raw, err := s.kv.Get(ctx, cartKey(sessionID))
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.logger.Error(ctx, "loading cart record", err)
		}
		return Cart{}
	}

	parsed, err := Decode(raw)
	if err != nil {
		s.logger.Warn(s.logger.WithField(ctx, "decode_error", err.Error()), "discarding unreadable cart record")
		return Cart{}
	}
	return parsed
}

// Save overwrites the session's cart record and refreshes its TTL.
func (s *Store) Save(ctx context.Context, sessionID string, c Cart) error {
	encoded, err := Encode(c)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, cartKey(sessionID), encoded, s.ttl); err != nil {
		return fmt.Errorf("persisting cart record: %w", err)
	}
	return nil
}

// Clear removes the session's cart record entirely.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	if err := s.kv.Del(ctx, cartKey(sessionID)); err != nil {
		return fmt.Errorf("clearing cart record: %w", err)
	}
	return nil
}
