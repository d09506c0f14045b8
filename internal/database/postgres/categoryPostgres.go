package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/eventbooker/ticketing/internal/entity"
)

type categoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.TicketCategory) error {
	query := `
		INSERT INTO ticket_categories (
			id, event_id, name, description, price, total_stock, available_stock,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	now := time.Now()
	// Available stock starts equal to total stock.
	if _, err := r.db.ExecContext(ctx, query,
		category.ID,
		category.EventID,
		category.Name,
		category.Description,
		category.Price,
		category.TotalStock,
		category.TotalStock,
		now,
		now,
	); err != nil {
		return fmt.Errorf("failed to create ticket category: %w", err)
	}

	category.AvailableStock = category.TotalStock
	category.CreatedAt = now
	category.UpdatedAt = now
	return nil
}

func (r *categoryRepository) GetWithEvent(ctx context.Context, id string) (*entity.CategoryWithEvent, error) {
	query := `
		SELECT
			c.id, c.event_id, c.name, c.description, c.price, c.total_stock,
			c.available_stock, c.created_at, c.updated_at,
			e.id, e.title, e.description, e.venue, e.start_date, e.end_date,
			e.status, e.organizer_id, e.created_at, e.updated_at
		FROM ticket_categories c
		JOIN events e ON c.event_id = e.id
		WHERE c.id = $1
	`

	var result entity.CategoryWithEvent
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&result.ID,
		&result.EventID,
		&result.Name,
		&result.Description,
		&result.Price,
		&result.TotalStock,
		&result.AvailableStock,
		&result.CreatedAt,
		&result.UpdatedAt,
		&result.Event.ID,
		&result.Event.Title,
		&result.Event.Description,
		&result.Event.Venue,
		&result.Event.StartDate,
		&result.Event.EndDate,
		&result.Event.Status,
		&result.Event.OrganizerID,
		&result.Event.CreatedAt,
		&result.Event.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket category: %w", err)
	}

	return &result, nil
}

func (r *categoryRepository) GetByEventID(ctx context.Context, eventID string) ([]*entity.TicketCategory, error) {
	query := `
		SELECT id, event_id, name, description, price, total_stock,
			available_stock, created_at, updated_at
		FROM ticket_categories
		WHERE event_id = $1
		ORDER BY price
	`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ticket categories: %w", err)
	}
	defer rows.Close()

	var categories []*entity.TicketCategory
	for rows.Next() {
		var category entity.TicketCategory
		err := rows.Scan(
			&category.ID,
			&category.EventID,
			&category.Name,
			&category.Description,
			&category.Price,
			&category.TotalStock,
			&category.AvailableStock,
			&category.CreatedAt,
			&category.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket category: %w", err)
		}
		categories = append(categories, &category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ticket categories: %w", err)
	}

	return categories, nil
}
