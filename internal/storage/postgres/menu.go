package postgres

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/bellavista/ordering/internal/domain/menu"
)

const (
	listMenuItemsSQL = `SELECT id, name, description, price, image, category, popular
		FROM menu_items ORDER BY id`

	listMenuItemsByCategorySQL = `SELECT id, name, description, price, image, category, popular
		FROM menu_items WHERE category = $1 ORDER BY id`

	getMenuItemByIDSQL = `SELECT id, name, description, price, image, category, popular
		FROM menu_items WHERE id = $1`

	getMenuItemsByIDsSQL = `SELECT id, name, description, price, image, category, popular
		FROM menu_items WHERE id = ANY($1)`
)

var _ menu.Repository = (*MenuRepository)(nil)

// MenuRepository implements menu.Repository backed by PostgreSQL.
type MenuRepository struct {
	pool *pgxpool.Pool
}

// NewMenuRepository returns a MenuRepository that uses the given pool.
func NewMenuRepository(pool *pgxpool.Pool) *MenuRepository {
	return &MenuRepository{pool: pool}
}

// List returns all menu items ordered by ID.
func (r *MenuRepository) List(ctx context.Context) ([]menu.Item, error) {
	rows, err := r.pool.Query(ctx, listMenuItemsSQL)
	if err != nil {
		return nil, fmt.Errorf("listing menu items: %w", err)
	}
	return pgx.CollectRows(rows, scanMenuItem)
}

// ListByCategory returns all menu items in the given category.
func (r *MenuRepository) ListByCategory(ctx context.Context, c menu.Category) ([]menu.Item, error) {
	rows, err := r.pool.Query(ctx, listMenuItemsByCategorySQL, string(c))
	if err != nil {
		return nil, fmt.Errorf("listing menu items by category %q: %w", c, err)
	}
	return pgx.CollectRows(rows, scanMenuItem)
}

// GetByID returns a single menu item by its identifier.
func (r *MenuRepository) GetByID(ctx context.Context, id string) (*menu.Item, error) {
	rows, err := r.pool.Query(ctx, getMenuItemByIDSQL, id)
	if err != nil {
		return nil, fmt.Errorf("getting menu item %q: %w", id, err)
	}

	item, err := pgx.CollectExactlyOneRow(rows, scanMenuItem)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, menu.ErrNotFound
		}
		return nil, fmt.Errorf("getting menu item %q: %w", id, err)
	}
	return &item, nil
}

// GetByIDs returns menu items matching any of the given IDs.
func (r *MenuRepository) GetByIDs(ctx context.Context, ids []string) ([]menu.Item, error) {
	rows, err := r.pool.Query(ctx, getMenuItemsByIDsSQL, ids)
	if err != nil {
		return nil, fmt.Errorf("getting menu items by ids: %w", err)
	}
	return pgx.CollectRows(rows, scanMenuItem)
}

func scanMenuItem(row pgx.CollectableRow) (menu.Item, error) {
	var (
		it       menu.Item
		price    decimal.Decimal
		category string
	)
	err := row.Scan(&it.ID, &it.Name, &it.Description, &price, &it.Image, &category, &it.Popular)
	it.Price = price
	it.Category = menu.Category(category)
	return it, err
}
