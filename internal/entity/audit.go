package entity

import "time"

// AuditLog is an append-only record of security-relevant actions.
type AuditLog struct {
	ID        string    `json:"id" db:"id"`
	Action    string    `json:"action" db:"action"`
	UserID    string    `json:"user_id,omitempty" db:"user_id"`
	IPAddress string    `json:"ip_address" db:"ip_address"`
	Details   string    `json:"details,omitempty" db:"details"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
