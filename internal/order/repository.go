package order

import (
	"context"
	"errors"
)

var (
	// caller errors
	ErrEmptyCart         = errors.New("order must contain at least one line item")
	ErrInvalidLine       = errors.New("line item has an invalid product or quantity")
	ErrUnknownProduct    = errors.New("cart references an unknown product")
	ErrTotalMismatch     = errors.New("declared total does not match catalog prices")
	ErrInvalidStatus     = errors.New("unknown order status")
	ErrInvalidTransition = errors.New("illegal status transition")

	ErrNotFound          = errors.New("order not found")
	ErrInsufficientStock = errors.New("insufficient stock for cart item")

	// ErrRollbackFailed signals that a failed checkout could not be rolled
	// back; the store may be left inconsistent and needs operator attention.
	ErrRollbackFailed = errors.New("checkout rollback failed")
)

// Repository defines persistence operations for orders.
type Repository interface {
	// Create persists the order header and all of its line items as a single
	// transaction. Unit prices are re-read from the product catalog inside
	// the transaction and stock is decremented per line; any failure rolls
	// the whole checkout back. Returns the new order id after commit.
	Create(ctx context.Context, customerName string, lines []Line, declaredTotal float64) (int, error)

	// List returns all orders, most recent first.
	List(ctx context.Context) ([]Order, error)

	// ListLines returns the line items of an order in insertion order, each
	// joined with the product's current name and image. Returns ErrNotFound
	// when the order does not exist.
	ListLines(ctx context.Context, orderID int) ([]DetailLine, error)

	// GetStatus returns the current status of an order, or ErrNotFound.
	GetStatus(ctx context.Context, orderID int) (Status, error)

	// UpdateStatus sets the status of a single order. Returns ErrNotFound
	// when no row was affected.
	UpdateStatus(ctx context.Context, orderID int, status Status) error
}
