package service

import (
	"context"
	"testing"
	"time"

	"github.com/eventbooker/ticketing/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestPaymentSimulatorApproves(t *testing.T) {
	sim := NewPaymentSimulator(time.Millisecond, 0.95)
	sim.rnd = func() float64 { return 0.5 }

	assert.NoError(t, sim.Charge(context.Background()))
}

func TestPaymentSimulatorDeclines(t *testing.T) {
	sim := NewPaymentSimulator(time.Millisecond, 0.95)
	sim.rnd = func() float64 { return 0.99 }

	assert.ErrorIs(t, sim.Charge(context.Background()), entity.ErrPaymentFailed)
}

func TestPaymentSimulatorHonorsContext(t *testing.T) {
	sim := NewPaymentSimulator(time.Minute, 1.0)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := sim.Charge(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPaymentSimulatorSuccessRateBoundaries(t *testing.T) {
	t.Run("rate 1.0 always approves", func(t *testing.T) {
		sim := NewPaymentSimulator(0, 1.0)
		sim.rnd = func() float64 { return 0.999999 }
		assert.NoError(t, sim.Charge(context.Background()))
	})

	t.Run("rate 0.0 always declines", func(t *testing.T) {
		sim := NewPaymentSimulator(0, 0.0)
		sim.rnd = func() float64 { return 0.0 }
		assert.ErrorIs(t, sim.Charge(context.Background()), entity.ErrPaymentFailed)
	})
}
