package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/ecomarket/storefront/internal/cart"
	"github.com/ecomarket/storefront/internal/policy"
	"github.com/ecomarket/storefront/pkg/kv"
	"github.com/ecomarket/storefront/pkg/logger"
	"github.com/ecomarket/storefront/pkg/security"
)

// State is what the gateway knows about a session on each request. Anonymous
// visitors get the zero State.
type State struct {
	Role        policy.Role
	AccessToken string
}

func (s State) Authenticated() bool {
	return s.Role.Authenticated()
}

// profileRecord is the stored shape. AccessToken is sealed before it touches
// the key-value store; role and token live here rather than in the cookie so
// a role change takes effect without reissuing the cookie.
type profileRecord struct {
	Role        string `json:"role"`
	SealedToken string `json:"sealed_token"`
}

// Manager owns the session profile records and their lifecycle.
type Manager struct {
	kv     kv.Store
	sealer *security.Sealer
	carts  *cart.Store
	ttl    time.Duration
	logger *logger.Logger
}

func NewManager(store kv.Store, sealer *security.Sealer, carts *cart.Store, ttl time.Duration, logg *logger.Logger) *Manager {
	return &Manager{
		kv:     store,
		sealer: sealer,
		carts:  carts,
		ttl:    ttl,
		logger: logg,
	}
}

func profileKey(sessionID string) string {
	return fmt.Sprintf("profile:%s", sessionID)
}

// Current resolves the session's state. Missing, expired, or unreadable
// profile records all degrade to anonymous; unreadable ones are logged.
func (m *Manager) Current(ctx context.Context, sessionID string) State {
	raw, err := m.kv.Get(ctx, profileKey(sessionID))
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			m.logger.Error(ctx, "loading session profile", err)
		}
		return State{}
	}

	var rec profileRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		m.logger.Warn(ctx, "discarding unreadable session profile")
		return State{}
	}

	role := policy.ParseRole(rec.Role)
	if role == policy.RoleAnonymous {
		return State{}
	}

	token, err := m.sealer.Open(rec.SealedToken)
	if err != nil {
		m.logger.Warn(ctx, "discarding session with unreadable access token")
		return State{}
	}
	return State{Role: role, AccessToken: token}
}

// Login records the role and sealed backend token for the session.
func (m *Manager) Login(ctx context.Context, sessionID string, role policy.Role, accessToken string) error {
	sealed, err := m.sealer.Seal(accessToken)
	if err != nil {
		return fmt.Errorf("sealing access token: %w", err)
	}

	payload, err := json.Marshal(profileRecord{Role: string(role), SealedToken: sealed})
	if err != nil {
		return fmt.Errorf("encoding session profile: %w", err)
	}
	if err := m.kv.Set(ctx, profileKey(sessionID), string(payload), m.ttl); err != nil {
		return fmt.Errorf("persisting session profile: %w", err)
	}

	m.logger.Info(m.logger.WithRole(ctx, string(role)), "session signed in")
	return nil
}

// Logout removes everything the session owns: the profile record and the
// cart. Both removals are attempted even if one fails.
func (m *Manager) Logout(ctx context.Context, sessionID string) error {
	err := multierr.Combine(
		m.kv.Del(ctx, profileKey(sessionID)),
		m.carts.Clear(ctx, sessionID),
	)
	if err != nil {
		return fmt.Errorf("tearing down session: %w", err)
	}

	m.logger.Info(ctx, "session signed out")
	return nil
}
