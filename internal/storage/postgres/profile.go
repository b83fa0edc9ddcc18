package postgres

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bellavista/ordering/internal/domain/profile"
)

const (
	getProfileSQL = `SELECT user_id, full_name, phone, address
		FROM profiles WHERE user_id = $1`

	upsertProfileSQL = `INSERT INTO profiles (user_id, full_name, phone, address)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET full_name = EXCLUDED.full_name,
		    phone     = EXCLUDED.phone,
		    address   = EXCLUDED.address`
)

var _ profile.Repository = (*ProfileRepository)(nil)

// ProfileRepository implements profile.Repository backed by PostgreSQL.
type ProfileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository returns a ProfileRepository that uses the given pool.
func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

// Get returns the profile for the given user, or profile.ErrNotFound.
func (r *ProfileRepository) Get(ctx context.Context, userID string) (*profile.Profile, error) {
	var p profile.Profile
	err := r.pool.QueryRow(ctx, getProfileSQL, userID).
		Scan(&p.UserID, &p.FullName, &p.Phone, &p.Address)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, profile.ErrNotFound
		}
		return nil, fmt.Errorf("getting profile %q: %w", userID, err)
	}
	return &p, nil
}

// Upsert inserts or updates the profile row keyed by user ID.
func (r *ProfileRepository) Upsert(ctx context.Context, p *profile.Profile) error {
	_, err := r.pool.Exec(ctx, upsertProfileSQL, p.UserID, p.FullName, p.Phone, p.Address)
	if err != nil {
		return fmt.Errorf("upserting profile %q: %w", p.UserID, err)
	}
	return nil
}
