package profile

import (
	"context"

	"github.com/go-faster/errors"
)

// ErrNotFound is returned when no profile row exists for a user.
var ErrNotFound = errors.New("profile not found")

// Profile holds the customer's contact details, keyed by user ID.
// Every field except UserID may be empty; checkout substitutes a placeholder
// for a missing delivery address rather than blocking the order.
type Profile struct {
	UserID   string
	FullName string
	Phone    string
	Address  string
}

// Repository is a single-row get/upsert store keyed by user ID.
type Repository interface {
	Get(ctx context.Context, userID string) (*Profile, error)
	Upsert(ctx context.Context, p *Profile) error
}
