package payment

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulator_ApprovesByDefault(t *testing.T) {
	s := &Simulator{Delay: -1}

	err := s.Charge(context.Background(), MethodCard, decimal.RequireFromString("46.41"))
	require.NoError(t, err)
}

func TestSimulator_DecideHook(t *testing.T) {
	var gotMethod Method
	var gotAmount decimal.Decimal
	s := &Simulator{
		Delay: -1,
		Decide: func(method Method, amount decimal.Decimal) error {
			gotMethod, gotAmount = method, amount
			return ErrDeclined
		},
	}

	err := s.Charge(context.Background(), MethodWallet, decimal.RequireFromString("9.99"))

	require.ErrorIs(t, err, ErrDeclined)
	assert.Equal(t, MethodWallet, gotMethod)
	assert.True(t, gotAmount.Equal(decimal.RequireFromString("9.99")))
}

func TestSimulator_ContextCancellation(t *testing.T) {
	s := &Simulator{Delay: time.Minute}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Charge(ctx, MethodCard, decimal.NewFromInt(10))
	require.ErrorIs(t, err, context.Canceled)
}

func TestParseMethod(t *testing.T) {
	for _, in := range []string{"card", "wallet", "bank"} {
		m, err := ParseMethod(in)
		require.NoError(t, err)
		assert.Equal(t, Method(in), m)
	}

	_, err := ParseMethod("cash")
	require.Error(t, err)
}
