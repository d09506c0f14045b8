package worker

import (
	"context"
	"time"

	"github.com/eventbooker/ticketing/internal/service"

	"github.com/sirupsen/logrus"
)

// OrderReaperWorker cancels orders stuck in PENDING, returning their
// reserved stock to sale. An order only stays PENDING past the age limit
// if the process died between committing the reservation and settling the
// payment.
type OrderReaperWorker struct {
	orderService service.OrderService
	interval     time.Duration
	maxAge       time.Duration
}

func NewOrderReaperWorker(orderService service.OrderService, interval, maxAge time.Duration) *OrderReaperWorker {
	return &OrderReaperWorker{
		orderService: orderService,
		interval:     interval,
		maxAge:       maxAge,
	}
}

func (w *OrderReaperWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logrus.Info("Order reaper worker started")

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Order reaper worker stopped")
			return
		case <-ticker.C:
			w.reap(ctx)
		}
	}
}

func (w *OrderReaperWorker) reap(ctx context.Context) {
	before := time.Now().Add(-w.maxAge)

	reaped, err := w.orderService.ReapStalePending(ctx, before)
	if err != nil {
		logrus.Errorf("Failed to reap stale pending orders: %v", err)
		return
	}
	if reaped > 0 {
		logrus.Infof("Reaped %d stale pending orders", reaped)
	}
}
