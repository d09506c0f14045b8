package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/eventbooker/ticketing/internal/entity"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx so the inventory
// primitives can run standalone or inside an order transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// InventoryRepository holds per-category available-stock counters.
// Reserve and Release are the only authoritative stock mutations;
// Available is an eventually-consistent read.
type InventoryRepository interface {
	Reserve(ctx context.Context, q DBTX, categoryID string, quantity int) error
	Release(ctx context.Context, q DBTX, categoryID string, quantity int) error
	Available(ctx context.Context, categoryID string) (int, error)
}

type OrderRepository interface {
	// Create persists the order and all its tickets in one transaction,
	// reserving stock for every line item as part of the same transaction.
	Create(ctx context.Context, order *entity.Order, items []entity.OrderItem) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	GetAll(ctx context.Context) ([]*entity.Order, error)
	GetByUserID(ctx context.Context, userID string) ([]*entity.Order, error)
	MarkPaid(ctx context.Context, id string) error
	// Cancel flips a PENDING order to CANCELLED, cancels its tickets and
	// releases all reserved stock, atomically.
	Cancel(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) error
	GetStalePending(ctx context.Context, before time.Time) ([]string, error)
}

type TicketRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Ticket, error)
	GetByOrderID(ctx context.Context, orderID string) ([]*entity.Ticket, error)
	Update(ctx context.Context, ticket *entity.Ticket) error
}

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.TicketCategory) error
	GetWithEvent(ctx context.Context, id string) (*entity.CategoryWithEvent, error)
	GetByEventID(ctx context.Context, eventID string) ([]*entity.TicketCategory, error)
}

type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
	GetByID(ctx context.Context, id string) (*entity.Event, error)
	GetAll(ctx context.Context) ([]*entity.Event, error)
	UpdateStatus(ctx context.Context, id string, status entity.EventStatus) error
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}

type AuditRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
}
