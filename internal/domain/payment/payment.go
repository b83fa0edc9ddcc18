package payment

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrDeclined is returned when the payment provider refuses the charge.
// It is distinct from transport errors so callers can tell the user to try
// another method instead of retrying the same one.
var ErrDeclined = errors.New("payment declined")

// Method enumerates the supported payment methods.
type Method string

const (
	MethodCard   Method = "card"
	MethodWallet Method = "wallet"
	MethodBank   Method = "bank"
)

// ParseMethod validates a user-supplied payment method string.
func ParseMethod(s string) (Method, error) {
	switch m := Method(s); m {
	case MethodCard, MethodWallet, MethodBank:
		return m, nil
	default:
		return "", fmt.Errorf("unknown payment method %q", s)
	}
}

// Processor charges a customer. A nil return means the charge succeeded;
// ErrDeclined means the provider refused it; any other error is a transport
// or provider failure.
type Processor interface {
	Charge(ctx context.Context, method Method, amount decimal.Decimal) error
}
