package service

import (
	"context"

	repository "github.com/eventbooker/ticketing/internal/database/postgres"
	"github.com/eventbooker/ticketing/internal/entity"
)

type ticketService struct {
	ticketRepo repository.TicketRepository
}

func NewTicketService(ticketRepo repository.TicketRepository) *ticketService {
	return &ticketService{ticketRepo: ticketRepo}
}

func (s *ticketService) GetTicket(ctx context.Context, id string, user *entity.User) (*entity.Ticket, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanAccessTicket(user, ticket) {
		return nil, entity.ErrForbidden
	}
	ticket.Sanitize()
	return ticket, nil
}

func (s *ticketService) UpdateTicket(ctx context.Context, id string, req *UpdateTicketRequest, user *entity.User) (*entity.Ticket, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanAccessTicket(user, ticket) {
		return nil, entity.ErrForbidden
	}

	if req.SeatLabel != nil {
		ticket.SeatLabel = *req.SeatLabel
	}
	if req.Status != nil {
		switch *req.Status {
		case entity.TicketStatusActive, entity.TicketStatusUsed,
			entity.TicketStatusTransferred, entity.TicketStatusCancelled:
			ticket.Status = *req.Status
		default:
			return nil, entity.ErrInvalidInput
		}
	}

	if err := s.ticketRepo.Update(ctx, ticket); err != nil {
		return nil, err
	}
	ticket.Sanitize()
	return ticket, nil
}
