package entity

import "errors"

var (
	// Order errors
	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderTooLarge     = errors.New("cannot purchase more than the allowed number of tickets per order")
	ErrInvalidTransition = errors.New("invalid order status transition")

	// Purchase validation errors
	ErrCategoryNotFound   = errors.New("ticket category not found")
	ErrEventCancelled     = errors.New("cannot purchase tickets for a cancelled event")
	ErrInvalidPriceConfig = errors.New("invalid price configuration")
	ErrPriceMismatch      = errors.New("price does not match current category price")
	ErrInsufficientStock  = errors.New("not enough available stock")

	// Payment errors
	ErrPaymentFailed  = errors.New("payment failed")
	ErrPaymentTimeout = errors.New("payment timed out")

	// Ticket errors
	ErrTicketNotFound = errors.New("ticket not found")

	// Event errors
	ErrEventNotFound = errors.New("event not found")
	ErrEventDatePast = errors.New("event date cannot be in the past")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// General errors
	ErrForbidden    = errors.New("forbidden operation")
	ErrUnauthorized = errors.New("unauthorized access")
	ErrInvalidInput = errors.New("invalid input")

	// ErrStockInvariant indicates a reservation/release accounting bug:
	// a release would push available stock above total stock. It is an
	// internal fault, never a business-rule error shown as such.
	ErrStockInvariant = errors.New("stock accounting invariant violated")
)
