package postgres

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bellavista/ordering/internal/domain/membership"
)

const (
	getMembershipSQL = `SELECT user_id, tier, since
		FROM memberships WHERE user_id = $1`

	upsertMembershipSQL = `INSERT INTO memberships (user_id, tier, since)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET tier = EXCLUDED.tier`

	deleteMembershipSQL = `DELETE FROM memberships WHERE user_id = $1`
)

var _ membership.Repository = (*MembershipRepository)(nil)

// MembershipRepository implements membership.Repository backed by PostgreSQL.
type MembershipRepository struct {
	pool *pgxpool.Pool
}

// NewMembershipRepository returns a MembershipRepository that uses the given
// pool.
func NewMembershipRepository(pool *pgxpool.Pool) *MembershipRepository {
	return &MembershipRepository{pool: pool}
}

// Get returns the user's membership, or membership.ErrNotMember.
func (r *MembershipRepository) Get(ctx context.Context, userID string) (*membership.Membership, error) {
	var (
		m    membership.Membership
		tier string
	)
	err := r.pool.QueryRow(ctx, getMembershipSQL, userID).Scan(&m.UserID, &tier, &m.Since)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, membership.ErrNotMember
		}
		return nil, fmt.Errorf("getting membership %q: %w", userID, err)
	}
	m.Tier = membership.Tier(tier)
	return &m, nil
}

// Upsert records the membership, keeping the original join date when the
// user changes tier.
func (r *MembershipRepository) Upsert(ctx context.Context, m *membership.Membership) error {
	_, err := r.pool.Exec(ctx, upsertMembershipSQL, m.UserID, string(m.Tier), m.Since)
	if err != nil {
		return fmt.Errorf("upserting membership %q: %w", m.UserID, err)
	}
	return nil
}

// Delete removes the membership row. Deleting a non-member returns
// membership.ErrNotMember.
func (r *MembershipRepository) Delete(ctx context.Context, userID string) error {
	tag, err := r.pool.Exec(ctx, deleteMembershipSQL, userID)
	if err != nil {
		return fmt.Errorf("deleting membership %q: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return membership.ErrNotMember
	}
	return nil
}
