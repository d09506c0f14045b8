package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/eventbooker/ticketing/internal/entity"
)

type auditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	query := `
		INSERT INTO audit_logs (id, action, user_id, ip_address, details, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6)
	`

	now := time.Now()
	if _, err := r.db.ExecContext(ctx, query,
		log.ID,
		log.Action,
		log.UserID,
		log.IPAddress,
		log.Details,
		now,
	); err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}

	log.CreatedAt = now
	return nil
}
