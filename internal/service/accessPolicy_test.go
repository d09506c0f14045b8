package service

import (
	"testing"

	"github.com/eventbooker/ticketing/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestCanAccessOrder(t *testing.T) {
	organizerID := "organizer-1"
	order := &entity.Order{
		UserID: "owner-1",
		Tickets: []*entity.Ticket{
			{Event: &entity.Event{OrganizerID: organizerID}},
		},
	}

	tests := []struct {
		name    string
		user    *entity.User
		allowed bool
	}{
		{name: "nil principal", user: nil, allowed: false},
		{name: "admin", user: &entity.User{ID: "any", Role: entity.RoleAdmin}, allowed: true},
		{name: "owner", user: &entity.User{ID: "owner-1", Role: entity.RoleClient}, allowed: true},
		{name: "organizer of referenced event", user: &entity.User{ID: organizerID, Role: entity.RoleOrganizer}, allowed: true},
		{name: "unrelated organizer", user: &entity.User{ID: "organizer-2", Role: entity.RoleOrganizer}, allowed: false},
		{name: "stranger", user: &entity.User{ID: "other", Role: entity.RoleClient}, allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanAccessOrder(tt.user, order))
		})
	}
}

func TestCanAccessTicket(t *testing.T) {
	ticket := &entity.Ticket{
		Event: &entity.Event{OrganizerID: "organizer-1"},
		Order: &entity.Order{UserID: "owner-1"},
	}

	tests := []struct {
		name    string
		user    *entity.User
		allowed bool
	}{
		{name: "nil principal", user: nil, allowed: false},
		{name: "admin", user: &entity.User{ID: "any", Role: entity.RoleAdmin}, allowed: true},
		{name: "order owner", user: &entity.User{ID: "owner-1", Role: entity.RoleClient}, allowed: true},
		{name: "event organizer", user: &entity.User{ID: "organizer-1", Role: entity.RoleOrganizer}, allowed: true},
		{name: "stranger", user: &entity.User{ID: "other", Role: entity.RoleClient}, allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanAccessTicket(tt.user, ticket))
		})
	}
}
