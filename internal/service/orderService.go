package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	repository "github.com/eventbooker/ticketing/internal/database/postgres"
	"github.com/eventbooker/ticketing/internal/database/redis"
	"github.com/eventbooker/ticketing/internal/entity"
	"github.com/eventbooker/ticketing/monitoring"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type orderService struct {
	orderRepo    repository.OrderRepository
	categoryRepo repository.CategoryRepository
	payment      PaymentProcessor
	cache        *redis.AvailabilityCache

	maxTickets     int
	paymentTimeout time.Duration
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	categoryRepo repository.CategoryRepository,
	payment PaymentProcessor,
	cache *redis.AvailabilityCache,
	maxTickets int,
	paymentTimeout time.Duration,
) *orderService {
	return &orderService{
		orderRepo:      orderRepo,
		categoryRepo:   categoryRepo,
		payment:        payment,
		cache:          cache,
		maxTickets:     maxTickets,
		paymentTimeout: paymentTimeout,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, req *CreateOrderRequest, user *entity.User) (*entity.Order, error) {
	totalQuantity := 0
	for _, item := range req.Items {
		totalQuantity += item.Quantity
	}
	if totalQuantity > s.maxTickets {
		monitoring.ReservationFailed("order_too_large")
		return nil, entity.ErrOrderTooLarge
	}

	order := &entity.Order{
		ID:          uuid.New().String(),
		UserID:      user.ID,
		Status:      entity.OrderStatusPending,
		TotalAmount: decimal.Zero,
	}

	eventIDs := make(map[string]struct{})
	for _, item := range req.Items {
		category, err := s.categoryRepo.GetWithEvent(ctx, item.TicketCategoryID)
		if err != nil {
			monitoring.ReservationFailed("category_not_found")
			return nil, err
		}
		if category.Event.Status == entity.EventStatusCancelled {
			monitoring.ReservationFailed("event_cancelled")
			return nil, entity.ErrEventCancelled
		}
		if category.Price.IsNegative() {
			logrus.Errorf("category %s carries a negative price %s", category.ID, category.Price)
			monitoring.ReservationFailed("invalid_price_configuration")
			return nil, entity.ErrInvalidPriceConfig
		}
		if !category.Price.Equal(item.Price) {
			monitoring.ReservationFailed("price_mismatch")
			return nil, entity.ErrPriceMismatch
		}

		for i := 0; i < item.Quantity; i++ {
			code, err := entity.NewRedemptionCode()
			if err != nil {
				return nil, err
			}
			order.Tickets = append(order.Tickets, &entity.Ticket{
				ID:               uuid.New().String(),
				OrderID:          order.ID,
				EventID:          category.EventID,
				TicketCategoryID: category.ID,
				RedemptionCode:   code,
				Status:           entity.TicketStatusActive,
				Price:            category.Price,
			})
			order.TotalAmount = order.TotalAmount.Add(category.Price)
		}
		eventIDs[category.EventID] = struct{}{}
	}

	if err := s.orderRepo.Create(ctx, order, req.Items); err != nil {
		if errors.Is(err, entity.ErrInsufficientStock) {
			monitoring.ReservationFailed("insufficient_stock")
		}
		return nil, err
	}
	s.invalidate(ctx, eventIDs)

	if err := s.settle(ctx, order.ID); err != nil {
		s.invalidate(ctx, eventIDs)
		return nil, err
	}
	monitoring.TicketsIssued(len(order.Tickets))

	created, err := s.orderRepo.GetByID(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	created.Sanitize()
	return created, nil
}

// settle runs the charge for a freshly committed PENDING order and either
// finalizes it as PAID or cancels it, releasing its stock. The order and
// its reservation are already durable at this point, so the compensating
// cancel runs on a detached context.
func (s *orderService) settle(ctx context.Context, orderID string) error {
	payCtx, cancel := context.WithTimeout(ctx, s.paymentTimeout)
	defer cancel()

	start := time.Now()
	payErr := s.payment.Charge(payCtx)
	if payErr == nil {
		if err := s.orderRepo.MarkPaid(ctx, orderID); err != nil {
			return fmt.Errorf("failed to finalize paid order %s: %w", orderID, err)
		}
		monitoring.ObservePayment(time.Since(start), "success")
		monitoring.OrderCompleted("paid")
		return nil
	}

	outcome := entity.ErrPaymentFailed
	if errors.Is(payErr, context.DeadlineExceeded) {
		outcome = entity.ErrPaymentTimeout
	}
	monitoring.ObservePayment(time.Since(start), "failure")

	if err := s.orderRepo.Cancel(context.WithoutCancel(ctx), orderID); err != nil {
		logrus.Errorf("failed to cancel order %s after payment failure: %s", orderID, err.Error())
		return fmt.Errorf("failed to cancel order after payment failure: %w", err)
	}
	monitoring.OrderCompleted("cancelled")
	return outcome
}

func (s *orderService) invalidate(ctx context.Context, eventIDs map[string]struct{}) {
	if s.cache == nil || len(eventIDs) == 0 {
		return
	}
	ids := make([]string, 0, len(eventIDs))
	for id := range eventIDs {
		ids = append(ids, id)
	}
	if err := s.cache.Invalidate(ctx, ids...); err != nil {
		logrus.Errorf("failed to invalidate availability cache: %s", err.Error())
	}
}

func (s *orderService) GetOrder(ctx context.Context, id string, user *entity.User) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanAccessOrder(user, order) {
		return nil, entity.ErrForbidden
	}
	order.Sanitize()
	return order, nil
}

func (s *orderService) GetOrders(ctx context.Context, user *entity.User) ([]*entity.Order, error) {
	var (
		orders []*entity.Order
		err    error
	)
	if user.IsAdmin() {
		orders, err = s.orderRepo.GetAll(ctx)
	} else {
		orders, err = s.orderRepo.GetByUserID(ctx, user.ID)
	}
	if err != nil {
		return nil, err
	}
	for _, order := range orders {
		order.Sanitize()
	}
	return orders, nil
}

func (s *orderService) OverrideStatus(ctx context.Context, id string, status entity.OrderStatus, user *entity.User) (*entity.Order, error) {
	if !user.IsAdmin() {
		return nil, entity.ErrForbidden
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.CanTransition(status) {
		return nil, entity.ErrInvalidTransition
	}

	if status == entity.OrderStatusCancelled && order.Status == entity.OrderStatusPending {
		// cancelling a pending order must also release its reservation
		err = s.orderRepo.Cancel(ctx, id)
	} else {
		err = s.orderRepo.UpdateStatus(ctx, id, status)
	}
	if err != nil {
		return nil, err
	}

	order, err = s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Sanitize()
	return order, nil
}

func (s *orderService) ReapStalePending(ctx context.Context, before time.Time) (int, error) {
	ids, err := s.orderRepo.GetStalePending(ctx, before)
	if err != nil {
		return 0, fmt.Errorf("failed to list stale pending orders: %w", err)
	}

	reaped := 0
	for _, id := range ids {
		if err := s.orderRepo.Cancel(ctx, id); err != nil {
			// finalized between listing and cancelling, nothing to do
			if errors.Is(err, entity.ErrInvalidTransition) {
				continue
			}
			return reaped, fmt.Errorf("failed to reap order %s: %w", id, err)
		}
		monitoring.StaleOrderReaped()
		reaped++
	}
	return reaped, nil
}
