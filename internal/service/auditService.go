package service

import (
	"context"

	repository "github.com/eventbooker/ticketing/internal/database/postgres"
	"github.com/eventbooker/ticketing/internal/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// auditService records security-relevant actions. Recording is best
// effort; an audit write failure never fails the action being audited.
type auditService struct {
	auditRepo repository.AuditRepository
}

func NewAuditService(auditRepo repository.AuditRepository) *auditService {
	return &auditService{auditRepo: auditRepo}
}

func (s *auditService) Log(ctx context.Context, action, userID, ip, details string) {
	entry := &entity.AuditLog{
		ID:        uuid.New().String(),
		Action:    action,
		UserID:    userID,
		IPAddress: ip,
		Details:   details,
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		logrus.Errorf("failed to write audit log for action %s: %s", action, err.Error())
	}
}
