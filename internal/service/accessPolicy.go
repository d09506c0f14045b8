package service

import (
	"github.com/eventbooker/ticketing/internal/entity"
)

// CanAccessOrder reports whether the user may read the order: admins, the
// order's owner, and organizers of any event referenced by the order's
// tickets.
func CanAccessOrder(user *entity.User, order *entity.Order) bool {
	if user == nil {
		return false
	}
	if user.IsAdmin() || order.UserID == user.ID {
		return true
	}
	for _, ticket := range order.Tickets {
		if ticket.Event != nil && ticket.Event.OrganizerID == user.ID {
			return true
		}
	}
	return false
}

// CanAccessTicket reports whether the user may read the ticket: admins,
// the owner of the ticket's order, and the organizer of the ticket's
// event.
func CanAccessTicket(user *entity.User, ticket *entity.Ticket) bool {
	if user == nil {
		return false
	}
	if user.IsAdmin() {
		return true
	}
	if ticket.Order != nil && ticket.Order.UserID == user.ID {
		return true
	}
	return ticket.Event != nil && ticket.Event.OrganizerID == user.ID
}
