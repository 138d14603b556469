package cart

import (
	"context"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/ecomarket/storefront/pkg/errors"
	"github.com/ecomarket/storefront/pkg/logger"
)

// Service exposes cart operations to the HTTP layer.
type Service interface {
	View(ctx context.Context, sessionID string) (Cart, error)
	AddItem(ctx context.Context, sessionID string, item Line) (Cart, error)
	SetItemQuantity(ctx context.Context, sessionID string, productID int64, quantity int) (Cart, error)
	RemoveItem(ctx context.Context, sessionID string, productID int64) (Cart, error)
	Count(ctx context.Context, sessionID string) (int, error)
}

type service struct {
	store  *Store
	logger *logger.Logger
}

func NewService(store *Store, logg *logger.Logger) Service {
	return &service{store: store, logger: logg}
}

func (s *service) View(ctx context.Context, sessionID string) (Cart, error) {
	return s.store.Load(ctx, sessionID), nil
}

func (s *service) AddItem(ctx context.Context, sessionID string, item Line) (Cart, error) {
	if item.ProductID <= 0 {
		return Cart{}, pkgerrors.New(pkgerrors.CodeValidation, "product_id is required")
	}
	if item.UnitPrice.LessThan(decimal.Zero) {
		return Cart{}, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}

	next := Add(s.store.Load(ctx, sessionID), item)
	if err := s.store.Save(ctx, sessionID, next); err != nil {
		return Cart{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving cart")
	}

	s.logger.Info(s.logger.WithFields(ctx, map[string]any{
		"product_id": item.ProductID,
		"cart_lines": next.Count(),
	}), "cart item added")
	return next, nil
}

// SetItemQuantity follows the reducer's no-op semantics: a quantity below one
// or an absent product returns the cart unchanged without a save.
func (s *service) SetItemQuantity(ctx context.Context, sessionID string, productID int64, quantity int) (Cart, error) {
	current := s.store.Load(ctx, sessionID)
	if quantity < 1 || current.find(productID) < 0 {
		return current, nil
	}

	next := SetQuantity(current, productID, quantity)
	if err := s.store.Save(ctx, sessionID, next); err != nil {
		return Cart{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving cart")
	}
	return next, nil
}

// RemoveItem is a no-op for a product not in the cart.
func (s *service) RemoveItem(ctx context.Context, sessionID string, productID int64) (Cart, error) {
	current := s.store.Load(ctx, sessionID)
	if current.find(productID) < 0 {
		return current, nil
	}

	next := Remove(current, productID)
	if err := s.store.Save(ctx, sessionID, next); err != nil {
		return Cart{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving cart")
	}
	return next, nil
}

func (s *service) Count(ctx context.Context, sessionID string) (int, error) {
	return s.store.Load(ctx, sessionID).Count(), nil
}
