package order

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested order does not exist.
var ErrNotFound = errors.New("order not found")

// Status is the fulfilment state of an order. Transitions are owned by the
// kitchen/fulfilment process, not by this service: orders are created as
// StatusPending and only ever read afterwards.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPreparing Status = "preparing"
	StatusDelivered Status = "delivered"
)

// Line is one distinct purchased item within an order, frozen at order time.
// It carries the cart's snapshotted name and unit price, not a live catalog
// reference, so later menu edits never alter order history.
type Line struct {
	ItemName  string
	Quantity  int
	UnitPrice decimal.Decimal
}

// Order is the durable record of a placed order. Subtotal and Tax are
// persisted alongside Total so read views never have to reverse the tax
// computation.
type Order struct {
	ID              string
	UserID          string
	Subtotal        decimal.Decimal
	Tax             decimal.Decimal
	Total           decimal.Decimal
	Status          Status
	DeliveryAddress string
	CreatedAt       time.Time
	Lines           []Line
}

// Repository defines persistence and read operations for orders.
type Repository interface {
	// Create persists the order header and all its lines in a single atomic
	// unit: either everything commits or nothing does. The store assigns ID
	// and CreatedAt, which Create fills in on the passed order.
	Create(ctx context.Context, o *Order) error

	// GetByID returns the order with its lines. It returns ErrNotFound when
	// the header does not exist; an order with zero lines is a valid result.
	GetByID(ctx context.Context, id string) (*Order, error)

	// ListByUser returns the user's orders newest-first, lines included.
	ListByUser(ctx context.Context, userID string) ([]Order, error)
}
