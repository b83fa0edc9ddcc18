// Package checkout converts a non-empty cart into a durable order exactly
// once per confirmation. The pipeline is: single-flight guard, payment
// charge, delivery address lookup, atomic order persistence, cart clear.
// Any failed step aborts the rest and leaves the cart intact so the user can
// retry.
package checkout

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/bellavista/ordering/internal/domain/auth"
	"github.com/bellavista/ordering/internal/domain/cart"
	"github.com/bellavista/ordering/internal/domain/order"
	"github.com/bellavista/ordering/internal/domain/payment"
	"github.com/bellavista/ordering/internal/domain/pricing"
	"github.com/bellavista/ordering/internal/domain/profile"
)

// FallbackAddress is substituted when the user's profile has no delivery
// address. A missing address never blocks checkout.
const FallbackAddress = "Address not set"

// DefaultPersistTimeout bounds the order write so a hung store surfaces as a
// retryable failure instead of a stuck request.
const DefaultPersistTimeout = 10 * time.Second

// Sentinel errors for checkout preconditions.
var (
	ErrEmptyCart = errors.New("cart is empty")
	ErrNoUser    = errors.New("no authenticated user")
)

// Config holds tuning knobs for the checkout Service.
type Config struct {
	// PersistTimeout bounds the order persistence call. Zero means
	// DefaultPersistTimeout.
	PersistTimeout time.Duration
}

// Service orchestrates the checkout pipeline.
type Service struct {
	profiles profile.Repository
	payments payment.Processor
	orders   order.Repository
	timeout  time.Duration

	// inflight serialises confirmations per user session: while a checkout
	// is running, a duplicate confirmation (double-click, second tab) joins
	// the in-flight call and observes its outcome instead of charging and
	// persisting a second time.
	inflight singleflight.Group
}

// NewService creates a checkout Service with the required collaborators.
func NewService(profiles profile.Repository, payments payment.Processor, orders order.Repository, cfg Config) *Service {
	timeout := cfg.PersistTimeout
	if timeout <= 0 {
		timeout = DefaultPersistTimeout
	}
	return &Service{
		profiles: profiles,
		payments: payments,
		orders:   orders,
		timeout:  timeout,
	}
}

// Confirm runs the checkout pipeline for the given user and cart. On success
// the cart is empty and the returned order carries the store-assigned ID and
// creation time. On failure the cart is untouched.
func (s *Service) Confirm(ctx context.Context, user auth.User, c *cart.Cart, method payment.Method) (*order.Order, error) {
	if user.ID == "" {
		return nil, ErrNoUser
	}

	v, err, _ := s.inflight.Do(user.ID, func() (any, error) {
		return s.confirm(ctx, user, c, method)
	})
	if err != nil {
		return nil, err
	}
	return v.(*order.Order), nil
}

func (s *Service) confirm(ctx context.Context, user auth.User, c *cart.Cart, method payment.Method) (*order.Order, error) {
	lines := c.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	// Totals are fixed at confirmation time from the cart's snapshots.
	quote := pricing.Calculate(lines).Rounded()

	if err := s.payments.Charge(ctx, method, quote.Total); err != nil {
		return nil, errors.Wrap(err, "charge payment")
	}

	addr, err := s.deliveryAddress(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	o := &order.Order{
		UserID:          user.ID,
		Subtotal:        quote.Subtotal,
		Tax:             quote.Tax,
		Total:           quote.Total,
		Status:          order.StatusPending,
		DeliveryAddress: addr,
		Lines:           make([]order.Line, len(lines)),
	}
	for i, l := range lines {
		o.Lines[i] = order.Line{
			ItemName:  l.Item.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.Item.Price,
		}
	}

	persistCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.orders.Create(persistCtx, o); err != nil {
		return nil, errors.Wrap(err, "create order")
	}

	c.Clear()

	zctx.From(ctx).Info("Order placed",
		zap.String("order_id", o.ID),
		zap.String("user_id", user.ID),
		zap.String("total", o.Total.StringFixed(2)),
		zap.Int("lines", len(o.Lines)),
	)
	return o, nil
}

// deliveryAddress looks up the user's profile address, tolerating a missing
// profile or blank address.
func (s *Service) deliveryAddress(ctx context.Context, userID string) (string, error) {
	p, err := s.profiles.Get(ctx, userID)
	switch {
	case errors.Is(err, profile.ErrNotFound):
		return FallbackAddress, nil
	case err != nil:
		return "", errors.Wrap(err, "load profile")
	case p.Address == "":
		return FallbackAddress, nil
	}
	return p.Address, nil
}
