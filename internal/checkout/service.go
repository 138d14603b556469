package checkout

import (
	"context"

	"github.com/ecomarket/storefront/internal/cart"
	pkgerrors "github.com/ecomarket/storefront/pkg/errors"
	"github.com/ecomarket/storefront/pkg/logger"
	"github.com/ecomarket/storefront/pkg/metrics"
	"github.com/ecomarket/storefront/pkg/upstream"
)

// Backend is the slice of the marketplace API checkout needs.
type Backend interface {
	Checkout(ctx context.Context, token string, input upstream.CheckoutInput, idempotencyKey string) (upstream.CheckoutResult, error)
}

// Service submits carts to the marketplace backend as orders.
type Service interface {
	Submit(ctx context.Context, sessionID, accessToken string, addressID int64) (upstream.CheckoutResult, error)
}

type service struct {
	carts   *cart.Store
	backend Backend
	metrics *metrics.CheckoutMetrics
	logger  *logger.Logger
	mintID  func() string
}

func NewService(carts *cart.Store, backend Backend, m *metrics.CheckoutMetrics, logg *logger.Logger) Service {
	return &service{
		carts:   carts,
		backend: backend,
		metrics: m,
		logger:  logg,
		mintID:  upstream.NewIdempotencyKey,
	}
}

// Submit places the order. Preconditions are checked before any network
// call. The cart's checkout token is minted on the first attempt and
// persisted before the request goes out, so a retry after a timeout replays
// the same idempotency key; any cart mutation invalidates the token. The
// cart is cleared only after the backend confirms the order.
func (s *service) Submit(ctx context.Context, sessionID, accessToken string, addressID int64) (upstream.CheckoutResult, error) {
	if addressID <= 0 {
		return upstream.CheckoutResult{}, pkgerrors.New(pkgerrors.CodeValidation, "a delivery address must be selected")
	}

	current := s.carts.Load(ctx, sessionID)
	if current.Empty() {
		return upstream.CheckoutResult{}, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	if current.CheckoutToken == "" {
		current.CheckoutToken = s.mintID()
		if err := s.carts.Save(ctx, sessionID, current); err != nil {
			return upstream.CheckoutResult{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persisting checkout attempt")
		}
	}

	input := upstream.CheckoutInput{AddressID: addressID}
	for _, ln := range current.Lines {
		input.Items = append(input.Items, upstream.CheckoutItem{
			ProductID: ln.ProductID,
			Quantity:  ln.Quantity,
		})
	}

	result, err := s.backend.Checkout(ctx, accessToken, input, current.CheckoutToken)
	if err != nil {
		code := pkgerrors.CodeOf(err)
		s.metrics.IncFailure(string(code))
		s.logger.Error(s.logger.WithField(ctx, "error_code", string(code)), "checkout rejected", err)
		return upstream.CheckoutResult{}, err
	}

	if err := s.carts.Clear(ctx, sessionID); err != nil {
		// The order exists; a stale cart record is the lesser problem.
		s.logger.Error(ctx, "clearing cart after successful checkout", err)
	}

	s.metrics.IncSuccess()
	s.logger.Info(s.logger.WithField(ctx, "order_id", result.OrderID), "checkout completed")
	return result, nil
}
