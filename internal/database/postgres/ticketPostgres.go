package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/eventbooker/ticketing/internal/entity"
)

type ticketRepository struct {
	db *sql.DB
}

func NewTicketRepository(db *sql.DB) TicketRepository {
	return &ticketRepository{db: db}
}

// GetByID hydrates the ticket with its event and its order (including the
// order's owning user) so the access policy can decide from one read.
func (r *ticketRepository) GetByID(ctx context.Context, id string) (*entity.Ticket, error) {
	query := `
		SELECT
			t.id, t.order_id, t.event_id, t.ticket_category_id, t.redemption_code,
			COALESCE(t.seat_label, ''), t.status, t.price, t.created_at, t.updated_at,
			e.id, e.title, e.venue, e.start_date, e.end_date, e.status, e.organizer_id,
			o.id, o.user_id, o.status, o.total_amount, o.created_at, o.updated_at,
			u.id, u.email, u.first_name, u.last_name, u.role
		FROM tickets t
		JOIN events e ON t.event_id = e.id
		JOIN orders o ON t.order_id = o.id
		JOIN users u ON o.user_id = u.id
		WHERE t.id = $1
	`

	var ticket entity.Ticket
	var event entity.Event
	var order entity.Order
	var user entity.User
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.OrderID,
		&ticket.EventID,
		&ticket.TicketCategoryID,
		&ticket.RedemptionCode,
		&ticket.SeatLabel,
		&ticket.Status,
		&ticket.Price,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
		&event.ID,
		&event.Title,
		&event.Venue,
		&event.StartDate,
		&event.EndDate,
		&event.Status,
		&event.OrganizerID,
		&order.ID,
		&order.UserID,
		&order.Status,
		&order.TotalAmount,
		&order.CreatedAt,
		&order.UpdatedAt,
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Role,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrTicketNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}

	order.User = &user
	ticket.Event = &event
	ticket.Order = &order

	return &ticket, nil
}

func (r *ticketRepository) GetByOrderID(ctx context.Context, orderID string) ([]*entity.Ticket, error) {
	query := `
		SELECT
			t.id, t.order_id, t.event_id, t.ticket_category_id, t.redemption_code,
			COALESCE(t.seat_label, ''), t.status, t.price, t.created_at, t.updated_at,
			e.id, e.title, e.venue, e.start_date, e.end_date, e.status, e.organizer_id
		FROM tickets t
		JOIN events e ON t.event_id = e.id
		WHERE t.order_id = $1
		ORDER BY t.created_at
	`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tickets by order: %w", err)
	}
	defer rows.Close()

	var tickets []*entity.Ticket
	for rows.Next() {
		var ticket entity.Ticket
		var event entity.Event
		err := rows.Scan(
			&ticket.ID,
			&ticket.OrderID,
			&ticket.EventID,
			&ticket.TicketCategoryID,
			&ticket.RedemptionCode,
			&ticket.SeatLabel,
			&ticket.Status,
			&ticket.Price,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
			&event.ID,
			&event.Title,
			&event.Venue,
			&event.StartDate,
			&event.EndDate,
			&event.Status,
			&event.OrganizerID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		ticket.Event = &event
		tickets = append(tickets, &ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tickets: %w", err)
	}

	return tickets, nil
}

// Update persists seat label and status; price and linkage never change.
func (r *ticketRepository) Update(ctx context.Context, ticket *entity.Ticket) error {
	query := `
		UPDATE tickets
		SET seat_label = $1, status = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $3
	`

	result, err := r.db.ExecContext(ctx, query, ticket.SeatLabel, ticket.Status, ticket.ID)
	if err != nil {
		return fmt.Errorf("failed to update ticket: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrTicketNotFound
	}

	return nil
}
