package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusCancelled OrderStatus = "CANCELLED"
	OrderStatusRefunded  OrderStatus = "REFUNDED"
)

// Order is one purchase attempt by one user. It is created together with
// its tickets in a single transaction and is never physically deleted;
// status transitions are the only post-creation mutation.
type Order struct {
	ID          string          `json:"id" db:"id"`
	UserID      string          `json:"user_id" db:"user_id"`
	Status      OrderStatus     `json:"status" db:"status"`
	TotalAmount decimal.Decimal `json:"total_amount" db:"total_amount"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`

	User    *User     `json:"user,omitempty"`
	Tickets []*Ticket `json:"tickets,omitempty"`
}

// OrderItem is one cart line: a quantity of a ticket category at the price
// the client last saw. The stated price must equal the current category
// price or the whole order is rejected.
type OrderItem struct {
	TicketCategoryID string          `json:"ticket_category_id" binding:"required"`
	Quantity         int             `json:"quantity" binding:"required,min=1"`
	Price            decimal.Decimal `json:"price"`
}

// CanTransition reports whether an order may move to the given status.
// PENDING -> PAID and PENDING -> CANCELLED are the creation-flow paths;
// PAID -> CANCELLED/REFUNDED is the administrative override.
func (o *Order) CanTransition(to OrderStatus) bool {
	switch o.Status {
	case OrderStatusPending:
		return to == OrderStatusPaid || to == OrderStatusCancelled
	case OrderStatusPaid:
		return to == OrderStatusCancelled || to == OrderStatusRefunded
	default:
		return false
	}
}

// Sanitize strips credentials from the embedded user on every read path.
func (o *Order) Sanitize() {
	if o.User != nil {
		o.User.Sanitize()
	}
	for _, t := range o.Tickets {
		t.Sanitize()
	}
}
