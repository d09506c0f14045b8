package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/eventbooker/ticketing/internal/entity"
)

type inventoryRepository struct {
	db *sql.DB
}

func NewInventoryRepository(db *sql.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

// Reserve decrements available stock by quantity as a single conditional
// UPDATE. The row lock taken by the UPDATE serializes concurrent
// reservations on the same category; reservations on different categories
// do not contend. Zero rows affected means either the category does not
// exist or the stock is insufficient.
func (r *inventoryRepository) Reserve(ctx context.Context, q DBTX, categoryID string, quantity int) error {
	if quantity <= 0 {
		return entity.ErrInvalidInput
	}

	query := `
		UPDATE ticket_categories
		SET available_stock = available_stock - $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND available_stock >= $2
	`

	result, err := q.ExecContext(ctx, query, categoryID, quantity)
	if err != nil {
		return fmt.Errorf("failed to reserve stock: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		var exists int
		err := q.QueryRowContext(ctx, `SELECT 1 FROM ticket_categories WHERE id = $1`, categoryID).Scan(&exists)
		if err == sql.ErrNoRows {
			return entity.ErrCategoryNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to check category existence: %w", err)
		}
		return entity.ErrInsufficientStock
	}

	return nil
}

// Release returns quantity units to the pool. The guard against exceeding
// total stock is an accounting invariant: a zero-row result here means a
// reservation was released twice or never taken, which is an internal bug,
// not a business condition.
func (r *inventoryRepository) Release(ctx context.Context, q DBTX, categoryID string, quantity int) error {
	if quantity <= 0 {
		return entity.ErrInvalidInput
	}

	query := `
		UPDATE ticket_categories
		SET available_stock = available_stock + $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND available_stock + $2 <= total_stock
	`

	result, err := q.ExecContext(ctx, query, categoryID, quantity)
	if err != nil {
		return fmt.Errorf("failed to release stock: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("release of %d units on category %s: %w", quantity, categoryID, entity.ErrStockInvariant)
	}

	return nil
}

// Available is a point-in-time read; callers must not assume the value
// still holds by the time they act on it.
func (r *inventoryRepository) Available(ctx context.Context, categoryID string) (int, error) {
	var available int
	err := r.db.QueryRowContext(ctx,
		`SELECT available_stock FROM ticket_categories WHERE id = $1`, categoryID,
	).Scan(&available)

	if err == sql.ErrNoRows {
		return 0, entity.ErrCategoryNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read available stock: %w", err)
	}

	return available, nil
}
