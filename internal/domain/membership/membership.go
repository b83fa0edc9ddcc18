package membership

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotMember is returned when a user has no active VIP membership.
var ErrNotMember = errors.New("not a vip member")

// Tier enumerates the VIP membership levels.
type Tier string

const (
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
)

// ParseTier validates a user-supplied tier name.
func ParseTier(s string) (Tier, error) {
	switch t := Tier(s); t {
	case TierSilver, TierGold, TierPlatinum:
		return t, nil
	default:
		return "", fmt.Errorf("unknown membership tier %q", s)
	}
}

// TierInfo describes a membership level offered to customers. The catalog is
// static marketing content; only the monthly price participates in any
// computation (the join charge).
type TierInfo struct {
	Tier         Tier
	MonthlyPrice decimal.Decimal
	Popular      bool
	Benefits     []string
}

var tiers = []TierInfo{
	{
		Tier:         TierSilver,
		MonthlyPrice: decimal.RequireFromString("9.99"),
		Benefits: []string{
			"5% discount on all orders",
			"Free delivery over $30",
			"Birthday special gift",
			"Early access to new menu items",
		},
	},
	{
		Tier:         TierGold,
		MonthlyPrice: decimal.RequireFromString("19.99"),
		Popular:      true,
		Benefits: []string{
			"10% discount on all orders",
			"Free delivery on all orders",
			"Priority customer support",
			"Monthly surprise gift",
			"Exclusive VIP-only dishes",
			"Double loyalty points",
		},
	},
	{
		Tier:         TierPlatinum,
		MonthlyPrice: decimal.RequireFromString("29.99"),
		Benefits: []string{
			"15% discount on all orders",
			"Free delivery on all orders",
			"24/7 VIP concierge service",
			"Weekly premium gifts",
			"Chef's special menu access",
			"Triple loyalty points",
			"Private dining reservations",
			"Complimentary drinks with meals",
		},
	},
}

// Tiers returns the static tier catalog, cheapest first.
func Tiers() []TierInfo {
	out := make([]TierInfo, len(tiers))
	copy(out, tiers)
	return out
}

// Info returns the catalog entry for a tier.
func Info(t Tier) (TierInfo, bool) {
	for _, ti := range tiers {
		if ti.Tier == t {
			return ti, true
		}
	}
	return TierInfo{}, false
}

// Membership is a user's active VIP subscription.
type Membership struct {
	UserID string
	Tier   Tier
	Since  time.Time
}

// Repository persists memberships keyed by user ID.
type Repository interface {
	Get(ctx context.Context, userID string) (*Membership, error)
	Upsert(ctx context.Context, m *Membership) error
	Delete(ctx context.Context, userID string) error
}
