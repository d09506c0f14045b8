package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TicketCategory is a priced tier of tickets for one event with its own
// stock pool. TotalStock is immutable after creation; AvailableStock only
// changes through the reservation/release protocol.
type TicketCategory struct {
	ID             string          `json:"id" db:"id"`
	EventID        string          `json:"event_id" db:"event_id"`
	Name           string          `json:"name" db:"name"`
	Description    string          `json:"description" db:"description"`
	Price          decimal.Decimal `json:"price" db:"price"`
	TotalStock     int             `json:"total_stock" db:"total_stock"`
	AvailableStock int             `json:"available_stock" db:"available_stock"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}

// CategoryWithEvent is the lookup contract consumed by the order flow.
type CategoryWithEvent struct {
	TicketCategory
	Event Event `json:"event"`
}
