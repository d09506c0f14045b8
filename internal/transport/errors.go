package transport

import (
	"errors"
	"net/http"

	"github.com/eventbooker/ticketing/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// respondError maps the service error taxonomy onto HTTP statuses.
// Unknown errors and internal invariant faults are reported as 500 with a
// generic message so storage details never leak to clients.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, entity.ErrOrderNotFound),
		errors.Is(err, entity.ErrTicketNotFound),
		errors.Is(err, entity.ErrEventNotFound),
		errors.Is(err, entity.ErrCategoryNotFound),
		errors.Is(err, entity.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, entity.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})

	case errors.Is(err, entity.ErrUnauthorized),
		errors.Is(err, entity.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})

	case errors.Is(err, entity.ErrPaymentFailed),
		errors.Is(err, entity.ErrPaymentTimeout):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})

	case errors.Is(err, entity.ErrOrderTooLarge),
		errors.Is(err, entity.ErrEventCancelled),
		errors.Is(err, entity.ErrInvalidPriceConfig),
		errors.Is(err, entity.ErrPriceMismatch),
		errors.Is(err, entity.ErrInsufficientStock),
		errors.Is(err, entity.ErrInvalidTransition),
		errors.Is(err, entity.ErrEventDatePast),
		errors.Is(err, entity.ErrEmailExists),
		errors.Is(err, entity.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	default:
		logrus.Errorf("internal error on %s %s: %s", c.Request.Method, c.Request.URL.Path, err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
