package menu

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested menu item does not exist.
var ErrNotFound = errors.New("menu item not found")

// Category enumerates the sections of the menu.
type Category string

const (
	CategoryAppetizers Category = "appetizers"
	CategoryMains      Category = "mains"
	CategoryDesserts   Category = "desserts"
	CategoryDrinks     Category = "drinks"
)

// Valid reports whether c is one of the known menu categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryAppetizers, CategoryMains, CategoryDesserts, CategoryDrinks:
		return true
	}
	return false
}

// Item represents a purchasable dish on the menu. Items are static catalog
// data: they are never mutated at runtime, only read.
type Item struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Image       string
	Category    Category
	Popular     bool
}

// Repository defines read operations for the menu catalog.
type Repository interface {
	List(ctx context.Context) ([]Item, error)
	ListByCategory(ctx context.Context, c Category) ([]Item, error)
	GetByID(ctx context.Context, id string) (*Item, error)
	GetByIDs(ctx context.Context, ids []string) ([]Item, error)
}
