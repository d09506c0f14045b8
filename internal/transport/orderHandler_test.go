package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/eventbooker/ticketing/internal/entity"
	"github.com/eventbooker/ticketing/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubOrderService returns canned results so the handler's status mapping
// can be exercised without storage.
type stubOrderService struct {
	order *entity.Order
	err   error
}

func (s *stubOrderService) CreateOrder(context.Context, *service.CreateOrderRequest, *entity.User) (*entity.Order, error) {
	return s.order, s.err
}

func (s *stubOrderService) GetOrder(context.Context, string, *entity.User) (*entity.Order, error) {
	return s.order, s.err
}

func (s *stubOrderService) GetOrders(context.Context, *entity.User) ([]*entity.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []*entity.Order{s.order}, nil
}

func (s *stubOrderService) OverrideStatus(context.Context, string, entity.OrderStatus, *entity.User) (*entity.Order, error) {
	return s.order, s.err
}

func (s *stubOrderService) ReapStalePending(context.Context, time.Time) (int, error) {
	return 0, nil
}

func newOrderRouter(svc service.OrderService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewOrderHandler(svc)

	router := gin.New()
	authed := router.Group("", func(c *gin.Context) {
		c.Set("currentUser", &entity.User{ID: "user-1", Role: entity.RoleClient})
	})
	authed.POST("/orders", handler.CreateOrder)
	authed.GET("/orders/:id", handler.GetOrder)
	return router
}

func TestCreateOrderStatusMapping(t *testing.T) {
	body := `{"items":[{"ticket_category_id":"cat-1","quantity":1,"price":"10.00"}]}`

	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{name: "insufficient stock", serviceErr: entity.ErrInsufficientStock, wantStatus: http.StatusBadRequest},
		{name: "order too large", serviceErr: entity.ErrOrderTooLarge, wantStatus: http.StatusBadRequest},
		{name: "price mismatch", serviceErr: entity.ErrPriceMismatch, wantStatus: http.StatusBadRequest},
		{name: "event cancelled", serviceErr: entity.ErrEventCancelled, wantStatus: http.StatusBadRequest},
		{name: "category not found", serviceErr: entity.ErrCategoryNotFound, wantStatus: http.StatusNotFound},
		{name: "payment declined", serviceErr: entity.ErrPaymentFailed, wantStatus: http.StatusPaymentRequired},
		{name: "payment timed out", serviceErr: entity.ErrPaymentTimeout, wantStatus: http.StatusPaymentRequired},
		{name: "invariant fault is hidden", serviceErr: entity.ErrStockInvariant, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newOrderRouter(&stubOrderService{err: tt.serviceErr})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusInternalServerError {
				assert.NotContains(t, w.Body.String(), "invariant", "internal fault details must not leak")
			}
		})
	}
}

func TestCreateOrderSuccessResponse(t *testing.T) {
	order := &entity.Order{ID: "order-1", Status: entity.OrderStatusPaid}
	router := newOrderRouter(&stubOrderService{order: order})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders",
		strings.NewReader(`{"items":[{"ticket_category_id":"cat-1","quantity":1,"price":"10.00"}]}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"order-1"`)
	assert.Contains(t, w.Body.String(), `"PAID"`)
}

func TestCreateOrderRejectsMalformedBody(t *testing.T) {
	router := newOrderRouter(&stubOrderService{})

	tests := []struct {
		name string
		body string
	}{
		{name: "empty body", body: ``},
		{name: "no items", body: `{"items":[]}`},
		{name: "zero quantity", body: `{"items":[{"ticket_category_id":"cat-1","quantity":0,"price":"10.00"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestGetOrderStatusMapping(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		router := newOrderRouter(&stubOrderService{err: entity.ErrOrderNotFound})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/missing", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("forbidden", func(t *testing.T) {
		router := newOrderRouter(&stubOrderService{err: entity.ErrForbidden})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/order-1", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
