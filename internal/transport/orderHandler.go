package transport

import (
	"net/http"

	"github.com/eventbooker/ticketing/internal/entity"
	"github.com/eventbooker/ticketing/internal/service"
	"github.com/eventbooker/ticketing/internal/transport/middleware"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	order, err := h.orderService.CreateOrder(c.Request.Context(), &req, user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	user := middleware.CurrentUser(c)
	order, err := h.orderService.GetOrder(c.Request.Context(), c.Param("id"), user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) GetOrders(c *gin.Context) {
	user := middleware.CurrentUser(c)
	orders, err := h.orderService.GetOrders(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, orders)
}

// UpdateOrderStatus is the administrative override for refunds and
// support interventions.
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	var req struct {
		Status entity.OrderStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	order, err := h.orderService.OverrideStatus(c.Request.Context(), c.Param("id"), req.Status, user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}
