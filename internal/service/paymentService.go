package service

import (
	"context"
	"math/rand"
	"time"

	"github.com/eventbooker/ticketing/internal/entity"
)

// paymentSimulator stands in for a real payment gateway. It waits for the
// configured processing delay and then approves the charge with the
// configured probability.
type paymentSimulator struct {
	delay       time.Duration
	successRate float64

	// overridable in tests
	rnd func() float64
}

func NewPaymentSimulator(delay time.Duration, successRate float64) *paymentSimulator {
	return &paymentSimulator{
		delay:       delay,
		successRate: successRate,
		rnd:         rand.Float64,
	}
}

func (p *paymentSimulator) Charge(ctx context.Context) error {
	timer := time.NewTimer(p.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}

	if p.rnd() >= p.successRate {
		return entity.ErrPaymentFailed
	}
	return nil
}
