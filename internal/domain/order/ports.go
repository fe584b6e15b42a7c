// internal/domain/order/ports.go
package order

import (
	"context"
	"errors"
)

var (
	// ErrMissingAddress is returned when an order has no shipping address
	ErrMissingAddress = errors.New("a shipping address is required")
	// ErrMissingUser is returned when an order has no owner
	ErrMissingUser = errors.New("a user is required")
	// ErrInvalidTotal is returned when an order total is not positive
	ErrInvalidTotal = errors.New("order total must be greater than zero")
	// ErrInvalidSKU is returned when a line's SKU is not numeric
	ErrInvalidSKU = errors.New("order line SKU must be numeric")
	// ErrNoItems is returned when confirming an order without lines
	ErrNoItems = errors.New("order has no items")
	// ErrInvalidQuantity is returned for lines with less than one unit
	ErrInvalidQuantity = errors.New("order line quantity must be at least 1")
	// ErrNoOrderID is returned when the order service omits the new order's id
	ErrNoOrderID = errors.New("order service returned no order id")
	// ErrOrderNotFound is returned for a missing order or one owned by another user
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderNotPayable is returned when an order is already paid or cancelled
	ErrOrderNotPayable = errors.New("order cannot be paid")
	// ErrOrderMismatch is returned when a payment disagrees with the stored order
	ErrOrderMismatch = errors.New("payment does not match the order")
)

// Backend is the order REST service
type Backend interface {
	CreateOrder(ctx context.Context, payload OrderPayload) (*Order, error)
	CreateItems(ctx context.Context, items []ItemPayload) error
	UpdateOrder(ctx context.Context, orderID int64, payload OrderPayload) error
	OrdersByUser(ctx context.Context, userID int64, pageNumber, pageSize int) ([]Order, error)
	// OrderByID reports a missing order with ErrOrderNotFound
	OrderByID(ctx context.Context, orderID int64) (*Order, error)
}
