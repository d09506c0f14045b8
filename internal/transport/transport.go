package transport

import (
	"time"

	"github.com/eventbooker/ticketing/internal/transport/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func InitRoutes(
	authHandler *AuthHandler,
	eventHandler *EventHandler,
	orderHandler *OrderHandler,
	ticketHandler *TicketHandler,
	tokenParser middleware.TokenParser,
) *gin.Engine {

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(30 * time.Second))

	// API routes
	api := router.Group("/api/v1")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Public catalog routes
		events := api.Group("/events")
		{
			events.GET("", eventHandler.GetAllEvents)
			events.GET("/:id", eventHandler.GetEvent)
			events.GET("/:id/categories", eventHandler.GetEventCategories)
		}

		// Authenticated routes
		authorized := api.Group("", middleware.Auth(tokenParser))
		{
			authorized.POST("/events", eventHandler.CreateEvent)
			authorized.PATCH("/events/:id/status", eventHandler.UpdateEventStatus)
			authorized.POST("/events/:id/categories", eventHandler.CreateCategory)

			orders := authorized.Group("/orders")
			{
				orders.POST("", orderHandler.CreateOrder)
				orders.GET("", orderHandler.GetOrders)
				orders.GET("/:id", orderHandler.GetOrder)
				orders.PATCH("/:id/status", orderHandler.UpdateOrderStatus)
			}

			tickets := authorized.Group("/tickets")
			{
				tickets.GET("/:id", ticketHandler.GetTicket)
				tickets.PATCH("/:id", ticketHandler.UpdateTicket)
			}
		}
	}

	// Metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	return router
}
