package postgres

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bellavista/ordering/internal/domain/auth"
)

const (
	getTokenByHashSQL = `SELECT user_id, email, token_hash
		FROM access_tokens WHERE token_hash = $1 AND active`

	upsertTokenSQL = `INSERT INTO access_tokens (user_id, email, token_hash, active)
		VALUES ($1, $2, $3, TRUE)
		ON CONFLICT (token_hash) DO UPDATE SET active = TRUE`
)

var _ auth.Repository = (*TokenRepository)(nil)

// TokenRepository provides access-token lookups backed by PostgreSQL.
type TokenRepository struct {
	pool *pgxpool.Pool
}

// NewTokenRepository returns a TokenRepository that uses the given pool.
func NewTokenRepository(pool *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{pool: pool}
}

// FindByTokenHash looks up an active access token by its HMAC-SHA256 hash.
func (r *TokenRepository) FindByTokenHash(ctx context.Context, hash string) (*auth.TokenRecord, error) {
	var rec auth.TokenRecord
	err := r.pool.QueryRow(ctx, getTokenByHashSQL, hash).
		Scan(&rec.UserID, &rec.Email, &rec.TokenHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("access token not found: %w", err)
		}
		return nil, fmt.Errorf("finding access token by hash: %w", err)
	}
	return &rec, nil
}

// Store records a hashed access token for a user. Used by the seed tool.
func (r *TokenRepository) Store(ctx context.Context, userID, email, hash string) error {
	_, err := r.pool.Exec(ctx, upsertTokenSQL, userID, email, hash)
	if err != nil {
		return fmt.Errorf("storing access token for %q: %w", userID, err)
	}
	return nil
}
