package service

import (
	"context"
	"time"

	"github.com/eventbooker/ticketing/internal/entity"
	"github.com/shopspring/decimal"
)

// CreateOrderRequest is one purchase attempt: a cart of category line
// items with the prices the client last saw.
type CreateOrderRequest struct {
	Items []entity.OrderItem `json:"items" binding:"required,min=1,dive"`
}

type UpdateTicketRequest struct {
	SeatLabel *string              `json:"seat_label"`
	Status    *entity.TicketStatus `json:"status"`
}

type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required,min=1,max=255"`
	Description string    `json:"description"`
	Venue       string    `json:"venue" binding:"required"`
	StartDate   time.Time `json:"start_date" binding:"required"`
	EndDate     time.Time `json:"end_date" binding:"required"`
}

type CreateCategoryRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=255"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	TotalStock  int             `json:"total_stock" binding:"required,min=1"`
}

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Role      string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type OrderService interface {
	// CreateOrder executes one purchase end-to-end: validation, stock
	// reservation, ticket minting, payment, and either finalization or
	// compensation. It returns the hydrated order on success.
	CreateOrder(ctx context.Context, req *CreateOrderRequest, user *entity.User) (*entity.Order, error)
	GetOrder(ctx context.Context, id string, user *entity.User) (*entity.Order, error)
	GetOrders(ctx context.Context, user *entity.User) ([]*entity.Order, error)
	OverrideStatus(ctx context.Context, id string, status entity.OrderStatus, user *entity.User) (*entity.Order, error)

	// ReapStalePending cancels orders stuck in PENDING since before the
	// given time, releasing their stock. Used by the reaper worker.
	ReapStalePending(ctx context.Context, before time.Time) (int, error)
}

type TicketService interface {
	GetTicket(ctx context.Context, id string, user *entity.User) (*entity.Ticket, error)
	UpdateTicket(ctx context.Context, id string, req *UpdateTicketRequest, user *entity.User) (*entity.Ticket, error)
}

type EventService interface {
	CreateEvent(ctx context.Context, req *CreateEventRequest, user *entity.User) (*entity.Event, error)
	GetEvent(ctx context.Context, id string) (*entity.Event, error)
	GetAllEvents(ctx context.Context) ([]*entity.Event, error)
	UpdateEventStatus(ctx context.Context, id string, status entity.EventStatus, user *entity.User) error
	CreateCategory(ctx context.Context, eventID string, req *CreateCategoryRequest, user *entity.User) (*entity.TicketCategory, error)
	GetEventCategories(ctx context.Context, eventID string) ([]*entity.TicketCategory, error)
}

type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest, ip string) (*entity.User, string, error)
	Login(ctx context.Context, req *LoginRequest, ip string) (*entity.User, string, error)
	ParseToken(token string) (*entity.User, error)
}

// PaymentProcessor charges exactly once per order. A nil return means the
// charge succeeded.
type PaymentProcessor interface {
	Charge(ctx context.Context) error
}

// AuditLogger is a best-effort side-effect sink; failures are logged, not
// propagated.
type AuditLogger interface {
	Log(ctx context.Context, action, userID, ip, details string)
}
