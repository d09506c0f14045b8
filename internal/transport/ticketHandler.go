package transport

import (
	"net/http"

	"github.com/eventbooker/ticketing/internal/service"
	"github.com/eventbooker/ticketing/internal/transport/middleware"

	"github.com/gin-gonic/gin"
)

type TicketHandler struct {
	ticketService service.TicketService
}

func NewTicketHandler(ticketService service.TicketService) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

func (h *TicketHandler) GetTicket(c *gin.Context) {
	user := middleware.CurrentUser(c)
	ticket, err := h.ticketService.GetTicket(c.Request.Context(), c.Param("id"), user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ticket)
}

func (h *TicketHandler) UpdateTicket(c *gin.Context) {
	var req service.UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	ticket, err := h.ticketService.UpdateTicket(c.Request.Context(), c.Param("id"), &req, user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ticket)
}
