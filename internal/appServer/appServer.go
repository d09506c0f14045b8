package appServer

import (
	"context"
	"crypto/tls"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eventbooker/ticketing/config"
	repository "github.com/eventbooker/ticketing/internal/database/postgres"
	redisCache "github.com/eventbooker/ticketing/internal/database/redis"
	"github.com/eventbooker/ticketing/internal/service"
	"github.com/eventbooker/ticketing/internal/transport"
	"github.com/eventbooker/ticketing/internal/worker"

	"github.com/eventbooker/ticketing/pkg/postgres"
	"github.com/eventbooker/ticketing/pkg/redis"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags),
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func NewServer(cfg *config.Config) {

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)

	// Initialize database
	db, err := postgres.NewPostgresDB(&cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run database migrations
	if err := postgres.RunMigrations(db); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize availability cache
	redisClient := redis.NewRedisClient(&cfg.Redis)
	defer redisClient.Close()
	availabilityCache := redisCache.NewAvailabilityCache(redisClient, cfg.Redis.CacheTTL)

	// Initialize repositories
	inventoryRepo := repository.NewInventoryRepository(db)
	orderRepo := repository.NewOrderRepository(db, inventoryRepo)
	ticketRepo := repository.NewTicketRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	eventRepo := repository.NewEventRepository(db)
	userRepo := repository.NewUserRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	// Initialize services
	auditService := service.NewAuditService(auditRepo)
	paymentProcessor := service.NewPaymentSimulator(cfg.Payment.Delay, cfg.Payment.SuccessRate)
	orderService := service.NewOrderService(orderRepo, categoryRepo, paymentProcessor, availabilityCache,
		cfg.Order.MaxTicketsPerOrder, cfg.Payment.Timeout)
	ticketService := service.NewTicketService(ticketRepo)
	eventService := service.NewEventService(eventRepo, categoryRepo, availabilityCache)
	authService := service.NewAuthService(userRepo, auditService, cfg.JWT.Secret, cfg.JWT.Expiration)

	// Initialize reaper worker
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reaperWorker := worker.NewOrderReaperWorker(orderService, cfg.Worker.ReapInterval, cfg.Worker.PendingMaxAge)
	go reaperWorker.Start(ctx)
	logrus.Info("Order reaper worker started")

	// Initialize handlers
	authHandler := transport.NewAuthHandler(authService)
	eventHandler := transport.NewEventHandler(eventService)
	orderHandler := transport.NewOrderHandler(orderService)
	ticketHandler := transport.NewTicketHandler(ticketService)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, transport.InitRoutes(authHandler, eventHandler, orderHandler, ticketHandler, authService)); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}
