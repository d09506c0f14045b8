package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/eventbooker/ticketing/internal/entity"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type orderRepository struct {
	db        *sql.DB
	inventory InventoryRepository
}

func NewOrderRepository(db *sql.DB, inventory InventoryRepository) OrderRepository {
	return &orderRepository{db: db, inventory: inventory}
}

// Create runs the reservation half of the purchase saga: for every line
// item, in the order submitted, it revalidates the category against the
// current row state and reserves stock, then inserts the order and all its
// tickets. Any failure rolls the whole transaction back, so no partial
// reservation can leak.
func (r *orderRepository) Create(ctx context.Context, order *entity.Order, items []entity.OrderItem) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelReadCommitted,
	})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, item := range items {
		var price decimal.Decimal
		var eventStatus entity.EventStatus

		query := `
			SELECT c.price, e.status
			FROM ticket_categories c
			JOIN events e ON c.event_id = e.id
			WHERE c.id = $1
		`
		err := tx.QueryRowContext(ctx, query, item.TicketCategoryID).Scan(&price, &eventStatus)
		if err == sql.ErrNoRows {
			return entity.ErrCategoryNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to load category: %w", err)
		}

		if eventStatus == entity.EventStatusCancelled {
			return entity.ErrEventCancelled
		}
		if !price.Equal(item.Price) {
			return entity.ErrPriceMismatch
		}

		if err := r.inventory.Reserve(ctx, tx, item.TicketCategoryID, item.Quantity); err != nil {
			return err
		}
	}

	now := time.Now()
	query := `
		INSERT INTO orders (id, user_id, status, total_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := tx.ExecContext(ctx, query,
		order.ID,
		order.UserID,
		order.Status,
		order.TotalAmount,
		now,
		now,
	); err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	ticketQuery := `
		INSERT INTO tickets (
			id, order_id, event_id, ticket_category_id, redemption_code,
			seat_label, status, price, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	for _, ticket := range order.Tickets {
		if _, err := tx.ExecContext(ctx, ticketQuery,
			ticket.ID,
			order.ID,
			ticket.EventID,
			ticket.TicketCategoryID,
			ticket.RedemptionCode,
			ticket.SeatLabel,
			ticket.Status,
			ticket.Price,
			now,
			now,
		); err != nil {
			return fmt.Errorf("failed to create ticket: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	order.CreatedAt = now
	order.UpdatedAt = now
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	query := `
		SELECT
			o.id, o.user_id, o.status, o.total_amount, o.created_at, o.updated_at,
			u.id, u.email, u.first_name, u.last_name, u.role, u.created_at, u.updated_at
		FROM orders o
		JOIN users u ON o.user_id = u.id
		WHERE o.id = $1
	`

	var order entity.Order
	var user entity.User
	err := r.db.QueryRowContext(ctx, query, id).Scan(
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
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	order.User = &user

	tickets, err := r.ticketsForOrders(ctx, []string{order.ID})
	if err != nil {
		return nil, err
	}
	order.Tickets = tickets[order.ID]

	return &order, nil
}

func (r *orderRepository) GetAll(ctx context.Context) ([]*entity.Order, error) {
	query := `
		SELECT id, user_id, status, total_amount, created_at, updated_at
		FROM orders
		ORDER BY created_at DESC
	`
	return r.queryOrders(ctx, query)
}

func (r *orderRepository) GetByUserID(ctx context.Context, userID string) ([]*entity.Order, error) {
	query := `
		SELECT id, user_id, status, total_amount, created_at, updated_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	return r.queryOrders(ctx, query, userID)
}

func (r *orderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []*entity.Order
	var ids []string
	for rows.Next() {
		var order entity.Order
		err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.Status,
			&order.TotalAmount,
			&order.CreatedAt,
			&order.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, &order)
		ids = append(ids, order.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	if len(orders) == 0 {
		return orders, nil
	}

	tickets, err := r.ticketsForOrders(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, order := range orders {
		order.Tickets = tickets[order.ID]
	}

	return orders, nil
}

// ticketsForOrders hydrates tickets (with their event) for a set of orders
// in a single query.
func (r *orderRepository) ticketsForOrders(ctx context.Context, orderIDs []string) (map[string][]*entity.Ticket, error) {
	query := `
		SELECT
			t.id, t.order_id, t.event_id, t.ticket_category_id, t.redemption_code,
			COALESCE(t.seat_label, ''), t.status, t.price, t.created_at, t.updated_at,
			e.id, e.title, e.venue, e.start_date, e.end_date, e.status, e.organizer_id
		FROM tickets t
		JOIN events e ON t.event_id = e.id
		WHERE t.order_id = ANY($1)
		ORDER BY t.created_at
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(orderIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to query tickets: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]*entity.Ticket)
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
		result[ticket.OrderID] = append(result[ticket.OrderID], &ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tickets: %w", err)
	}

	return result, nil
}

func (r *orderRepository) MarkPaid(ctx context.Context, id string) error {
	query := `
		UPDATE orders SET status = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2 AND status = $3
	`
	result, err := r.db.ExecContext(ctx, query, entity.OrderStatusPaid, id, entity.OrderStatusPending)
	if err != nil {
		return fmt.Errorf("failed to mark order paid: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrInvalidTransition
	}

	return nil
}

// Cancel is the compensating transaction: it flips a PENDING order to
// CANCELLED, cancels its tickets and releases every reserved unit back to
// its category, all atomically. The order row itself is retained.
func (r *orderRepository) Cancel(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelReadCommitted,
	})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE orders SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2 AND status = $3`,
		entity.OrderStatusCancelled, id, entity.OrderStatusPending,
	)
	if err != nil {
		return fmt.Errorf("failed to cancel order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		// Finalized concurrently, or never existed.
		return entity.ErrInvalidTransition
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT ticket_category_id, COUNT(*) FROM tickets WHERE order_id = $1 GROUP BY ticket_category_id`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to query reserved quantities: %w", err)
	}

	type reservation struct {
		categoryID string
		quantity   int
	}
	var reservations []reservation
	for rows.Next() {
		var res reservation
		if err := rows.Scan(&res.categoryID, &res.quantity); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan reserved quantity: %w", err)
		}
		reservations = append(reservations, res)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating reserved quantities: %w", err)
	}

	for _, res := range reservations {
		if err := r.inventory.Release(ctx, tx, res.categoryID, res.quantity); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE tickets SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE order_id = $2`,
		entity.TicketStatusCancelled, id,
	); err != nil {
		return fmt.Errorf("failed to cancel tickets: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) error {
	query := `UPDATE orders SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrOrderNotFound
	}

	return nil
}

func (r *orderRepository) GetStalePending(ctx context.Context, before time.Time) ([]string, error) {
	query := `SELECT id FROM orders WHERE status = $1 AND created_at < $2 ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, entity.OrderStatusPending, before)
	if err != nil {
		return nil, fmt.Errorf("failed to query stale pending orders: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan order id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stale pending orders: %w", err)
	}

	return ids, nil
}
