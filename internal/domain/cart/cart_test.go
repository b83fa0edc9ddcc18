package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bellavista/ordering/internal/domain/menu"
)

// --- Helpers ---

func newTestItem(id, name, price string) menu.Item {
	return menu.Item{
		ID:       id,
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Category: menu.CategoryMains,
	}
}

type recordingEvents struct {
	added   []string
	removed []string
}

func (e *recordingEvents) ItemAdded(item menu.Item, quantity int) {
	e.added = append(e.added, item.ID)
}

func (e *recordingEvents) ItemRemoved(item menu.Item) {
	e.removed = append(e.removed, item.ID)
}

// --- Tests ---

func TestAddItem_MergesQuantities(t *testing.T) {
	c := New(nil)
	pizza := newTestItem("1", "Margherita Pizza", "16.99")

	require.NoError(t, c.AddItem(pizza, 2))
	require.NoError(t, c.AddItem(pizza, 3))

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, 5, c.TotalItemCount())
}

func TestAddItem_InvalidQuantity(t *testing.T) {
	c := New(nil)
	pizza := newTestItem("1", "Margherita Pizza", "16.99")

	require.ErrorIs(t, c.AddItem(pizza, 0), ErrInvalidQuantity)
	require.ErrorIs(t, c.AddItem(pizza, -1), ErrInvalidQuantity)
	assert.True(t, c.Empty())
}

func TestLines_PreservesInsertionOrder(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.AddItem(newTestItem("3", "Caesar Salad", "12.99"), 1))
	require.NoError(t, c.AddItem(newTestItem("1", "Margherita Pizza", "16.99"), 1))
	require.NoError(t, c.AddItem(newTestItem("4", "Chocolate Lava Cake", "8.99"), 1))

	lines := c.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, "3", lines[0].Item.ID)
	assert.Equal(t, "1", lines[1].Item.ID)
	assert.Equal(t, "4", lines[2].Item.ID)
}

func TestSetQuantity_Overwrites(t *testing.T) {
	c := New(nil)
	pizza := newTestItem("1", "Margherita Pizza", "16.99")
	require.NoError(t, c.AddItem(pizza, 2))

	c.SetQuantity("1", 7)

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 7, lines[0].Quantity)
}

func TestSetQuantity_ZeroRemoves(t *testing.T) {
	c := New(nil)
	pizza := newTestItem("1", "Margherita Pizza", "16.99")
	require.NoError(t, c.AddItem(pizza, 2))

	c.SetQuantity("1", 0)

	assert.True(t, c.Empty())
	assert.Empty(t, c.Lines())
}

func TestSetQuantity_AbsentItemNoop(t *testing.T) {
	c := New(nil)

	c.SetQuantity("missing", 3)
	c.SetQuantity("missing", 0)

	assert.True(t, c.Empty())
}

func TestRemove_ReportsPresence(t *testing.T) {
	c := New(nil)
	pizza := newTestItem("1", "Margherita Pizza", "16.99")
	require.NoError(t, c.AddItem(pizza, 1))

	assert.True(t, c.Remove("1"))
	assert.False(t, c.Remove("1"))
	assert.True(t, c.Empty())
}

func TestClear(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.AddItem(newTestItem("1", "Margherita Pizza", "16.99"), 2))
	require.NoError(t, c.AddItem(newTestItem("2", "Gourmet Burger", "18.99"), 1))

	c.Clear()

	assert.True(t, c.Empty())
	assert.Zero(t, c.TotalItemCount())
	assert.True(t, c.Subtotal().IsZero())
}

func TestSubtotal(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.AddItem(newTestItem("1", "Margherita Pizza", "16.99"), 2))
	require.NoError(t, c.AddItem(newTestItem("4", "Chocolate Lava Cake", "8.99"), 1))

	// 2*16.99 + 8.99 = 42.97
	assert.True(t, c.Subtotal().Equal(decimal.RequireFromString("42.97")),
		"got %s", c.Subtotal())
}

func TestEvents_AddAndRemove(t *testing.T) {
	ev := &recordingEvents{}
	c := New(ev)
	pizza := newTestItem("1", "Margherita Pizza", "16.99")

	require.NoError(t, c.AddItem(pizza, 1))
	require.NoError(t, c.AddItem(pizza, 1))
	c.Remove("1")
	c.Remove("1")

	assert.Equal(t, []string{"1", "1"}, ev.added)
	assert.Equal(t, []string{"1"}, ev.removed)
}

func TestLines_ReturnsCopy(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.AddItem(newTestItem("1", "Margherita Pizza", "16.99"), 1))

	lines := c.Lines()
	lines[0].Quantity = 99

	assert.Equal(t, 1, c.Lines()[0].Quantity)
}

func TestManager_SameCartPerUser(t *testing.T) {
	m := NewManager(nil)

	c1 := m.Get("user-a")
	c2 := m.Get("user-a")
	other := m.Get("user-b")

	assert.Same(t, c1, c2)
	assert.NotSame(t, c1, other)
}

func TestManager_DropEndsSession(t *testing.T) {
	m := NewManager(nil)
	c1 := m.Get("user-a")
	require.NoError(t, c1.AddItem(newTestItem("1", "Margherita Pizza", "16.99"), 1))

	m.Drop("user-a")

	assert.True(t, m.Get("user-a").Empty())
}
