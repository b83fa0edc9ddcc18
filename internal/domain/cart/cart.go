// Package cart holds the session-scoped set of items a customer intends to
// purchase. A Cart snapshots menu items at add time: later catalog edits do
// not change the pricing of lines already in the cart, which keeps checkout
// totals stable for the life of the session.
package cart

import (
	"sync"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/bellavista/ordering/internal/domain/menu"
)

// ErrInvalidQuantity is returned when adding an item with a non-positive
// quantity.
var ErrInvalidQuantity = errors.New("quantity must be greater than 0")

// Line is one distinct item in the cart together with its quantity.
// The item is a snapshot taken when the line was created. Quantity is always
// at least 1 while the line exists; a line dropping to zero is removed.
type Line struct {
	Item     menu.Item
	Quantity int
}

// Events receives user-visible cart notifications. Implementations must be
// safe for concurrent use; callbacks are invoked outside the cart lock.
type Events interface {
	ItemAdded(item menu.Item, quantity int)
	ItemRemoved(item menu.Item)
}

// NopEvents discards all cart notifications.
type NopEvents struct{}

func (NopEvents) ItemAdded(menu.Item, int) {}
func (NopEvents) ItemRemoved(menu.Item)    {}

// Cart is the mutable per-session store of intended purchases. It is owned by
// a single user session; the mutex exists because HTTP serves that session's
// requests on arbitrary goroutines.
type Cart struct {
	mu     sync.Mutex
	events Events
	lines  map[string]*Line
	seq    []string // item IDs in insertion order
}

// New returns an empty cart. A nil events sink is replaced with NopEvents.
func New(events Events) *Cart {
	if events == nil {
		events = NopEvents{}
	}
	return &Cart{
		events: events,
		lines:  make(map[string]*Line),
	}
}

// AddItem puts quantity units of item into the cart. If a line for the item
// already exists its quantity is incremented, otherwise a new line is
// appended. There is no upper bound on quantity.
func (c *Cart) AddItem(item menu.Item, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	c.mu.Lock()
	if l, ok := c.lines[item.ID]; ok {
		l.Quantity += quantity
	} else {
		c.lines[item.ID] = &Line{Item: item, Quantity: quantity}
		c.seq = append(c.seq, item.ID)
	}
	c.mu.Unlock()

	c.events.ItemAdded(item, quantity)
	return nil
}

// SetQuantity overwrites the stored quantity for the given item ID.
// A quantity of zero is equivalent to Remove. Setting the quantity of an
// absent item is a no-op.
func (c *Cart) SetQuantity(id string, quantity int) {
	if quantity <= 0 {
		c.Remove(id)
		return
	}

	c.mu.Lock()
	if l, ok := c.lines[id]; ok {
		l.Quantity = quantity
	}
	c.mu.Unlock()
}

// Remove deletes the line for the given item ID and reports whether it
// existed.
func (c *Cart) Remove(id string) bool {
	c.mu.Lock()
	l, ok := c.lines[id]
	if ok {
		delete(c.lines, id)
		for i, sid := range c.seq {
			if sid == id {
				c.seq = append(c.seq[:i], c.seq[i+1:]...)
				break
			}
		}
	}
	c.mu.Unlock()

	if ok {
		c.events.ItemRemoved(l.Item)
	}
	return ok
}

// Clear empties the cart. Called after a successful checkout.
func (c *Cart) Clear() {
	c.mu.Lock()
	c.lines = make(map[string]*Line)
	c.seq = nil
	c.mu.Unlock()
}

// Lines returns a copy of the current cart lines in insertion order.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Line, 0, len(c.seq))
	for _, id := range c.seq {
		out = append(out, *c.lines[id])
	}
	return out
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines) == 0
}

// TotalItemCount returns the sum of all line quantities. Recomputed on every
// call; at session scale there is nothing worth caching.
func (c *Cart) TotalItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Subtotal returns the pre-tax sum of price times quantity over all lines.
func (c *Cart) Subtotal() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	sum := decimal.Zero
	for _, l := range c.lines {
		sum = sum.Add(l.Item.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return sum
}
