package membership

import (
	"context"
	"time"

	"github.com/go-faster/errors"

	"github.com/bellavista/ordering/internal/domain/payment"
)

// Service manages VIP subscriptions. Joining charges the tier's monthly
// price through the payment processor before the membership row is written;
// a declined or failed charge leaves the user's membership untouched.
type Service struct {
	members  Repository
	payments payment.Processor
	now      func() time.Time
}

// NewService creates a membership Service.
func NewService(members Repository, payments payment.Processor) *Service {
	return &Service{members: members, payments: payments, now: time.Now}
}

// Get returns the user's active membership, or ErrNotMember.
func (s *Service) Get(ctx context.Context, userID string) (*Membership, error) {
	return s.members.Get(ctx, userID)
}

// Join charges the first month and records the membership. Re-joining with a
// different tier upgrades or downgrades in place.
func (s *Service) Join(ctx context.Context, userID string, tier Tier, method payment.Method) (*Membership, error) {
	info, ok := Info(tier)
	if !ok {
		return nil, errors.Errorf("unknown membership tier %q", tier)
	}

	if err := s.payments.Charge(ctx, method, info.MonthlyPrice); err != nil {
		return nil, errors.Wrap(err, "charge membership fee")
	}

	m := &Membership{
		UserID: userID,
		Tier:   tier,
		Since:  s.now().UTC(),
	}
	if err := s.members.Upsert(ctx, m); err != nil {
		return nil, errors.Wrap(err, "store membership")
	}
	return m, nil
}

// Cancel ends the user's membership. Cancelling a non-member returns
// ErrNotMember.
func (s *Service) Cancel(ctx context.Context, userID string) error {
	return s.members.Delete(ctx, userID)
}
