package payment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultDelay matches the latency of the gateway the simulator stands in
// for.
const DefaultDelay = 1500 * time.Millisecond

var _ Processor = (*Simulator)(nil)

// Simulator is a Processor that approves every charge after a fixed delay.
// It exists so a real gateway integration can replace it without touching
// the checkout pipeline.
type Simulator struct {
	// Delay before the simulated provider answers. Zero means DefaultDelay;
	// a negative value disables the delay entirely.
	Delay time.Duration

	// Decide, when set, overrides the always-approve behaviour. Tests use it
	// to exercise decline and provider-error paths.
	Decide func(method Method, amount decimal.Decimal) error
}

// Charge waits out the provider delay and then approves (or consults
// Decide). Cancelling the context abandons the in-flight charge; nothing has
// been persisted at that point, so abandoning is safe.
func (s *Simulator) Charge(ctx context.Context, method Method, amount decimal.Decimal) error {
	delay := s.Delay
	if delay == 0 {
		delay = DefaultDelay
	}
	if delay > 0 {
		t := time.NewTimer(delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}

	if s.Decide != nil {
		return s.Decide(method, amount)
	}
	return nil
}
