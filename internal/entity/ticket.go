package entity

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type TicketStatus string

const (
	TicketStatusActive      TicketStatus = "ACTIVE"
	TicketStatusUsed        TicketStatus = "USED"
	TicketStatusTransferred TicketStatus = "TRANSFERRED"
	TicketStatusCancelled   TicketStatus = "CANCELLED"
)

// Ticket is one purchased unit. Price is frozen at purchase time and never
// follows later category price changes. The redemption code is unique
// across the system (enforced by the storage layer) and never reused.
type Ticket struct {
	ID               string          `json:"id" db:"id"`
	OrderID          string          `json:"order_id" db:"order_id"`
	EventID          string          `json:"event_id" db:"event_id"`
	TicketCategoryID string          `json:"ticket_category_id" db:"ticket_category_id"`
	RedemptionCode   string          `json:"redemption_code" db:"redemption_code"`
	SeatLabel        string          `json:"seat_label,omitempty" db:"seat_label"`
	Status           TicketStatus    `json:"status" db:"status"`
	Price            decimal.Decimal `json:"price" db:"price"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at" db:"updated_at"`

	Event *Event `json:"event,omitempty"`
	Order *Order `json:"order,omitempty"`
}

// Sanitize strips credentials from any user nested through the order.
func (t *Ticket) Sanitize() {
	if t.Order != nil && t.Order.User != nil {
		t.Order.User.Sanitize()
	}
}

// NewRedemptionCode produces an opaque check-in code. The timestamp prefix
// keeps codes sortable for support lookups; the random suffix carries the
// uniqueness, backed by a unique constraint on the tickets table.
func NewRedemptionCode() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate redemption code: %w", err)
	}
	return fmt.Sprintf("EVT_%d_%s", time.Now().UnixMilli(), hex.EncodeToString(buf)), nil
}
