// internal/infrastructure/backend/order_api.go
package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/domain/tracking"
)

// OrderAPI is the order service. It serves both order writes and the
// tracking reads.
type OrderAPI struct {
	client *Client
}

// NewOrderAPI creates an order service adapter
func NewOrderAPI(client *Client) *OrderAPI {
	return &OrderAPI{client: client}
}

// CreateOrder creates an order row
func (a *OrderAPI) CreateOrder(ctx context.Context, payload order.OrderPayload) (*order.Order, error) {
	var created order.Order
	if err := a.client.Do(ctx, http.MethodPost, "/orders", payload, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// CreateItems writes all order lines in one batch
func (a *OrderAPI) CreateItems(ctx context.Context, items []order.ItemPayload) error {
	return a.client.Do(ctx, http.MethodPost, "/order_items", items, nil)
}

// UpdateOrder replaces an order's status fields
func (a *OrderAPI) UpdateOrder(ctx context.Context, orderID int64, payload order.OrderPayload) error {
	return a.client.Do(ctx, http.MethodPut, fmt.Sprintf("/orders/%d", orderID), payload, nil)
}

// OrdersByUser returns one page of a user's orders
func (a *OrderAPI) OrdersByUser(ctx context.Context, userID int64, pageNumber, pageSize int) ([]order.Order, error) {
	path := fmt.Sprintf("/orders/orderByUser/%d?pageNumber=%d&pageSize=%d", userID, pageNumber, pageSize)
	data, err := a.client.getList(ctx, path)
	if err != nil {
		return nil, err
	}
	return decodeList[order.Order](data)
}

// OrderByID returns one order. A 404 or an empty answer is ErrOrderNotFound.
func (a *OrderAPI) OrderByID(ctx context.Context, orderID int64) (*order.Order, error) {
	var stored order.Order
	err := a.client.Do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d", orderID), nil, &stored)
	if errors.Is(err, ErrNotFound) {
		return nil, order.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	if stored.OrderID == 0 {
		return nil, order.ErrOrderNotFound
	}
	return &stored, nil
}

// StatusHistory returns the status rows of an order
func (a *OrderAPI) StatusHistory(ctx context.Context, orderID int64) ([]tracking.HistoryEntry, error) {
	data, err := a.client.getList(ctx, fmt.Sprintf("/order_status_history/status/%d", orderID))
	if err != nil {
		return nil, err
	}
	return decodeList[tracking.HistoryEntry](data)
}

// Tracking returns the shipping rows of a user's order
func (a *OrderAPI) Tracking(ctx context.Context, userID, orderID int64) ([]tracking.Shipping, error) {
	data, err := a.client.getList(ctx, fmt.Sprintf("/order-tracking/%d/%d", userID, orderID))
	if err != nil {
		return nil, err
	}
	return decodeList[tracking.Shipping](data)
}

// OrderItems returns the lines of an order
func (a *OrderAPI) OrderItems(ctx context.Context, orderID int64) ([]order.ItemDetail, error) {
	data, err := a.client.getList(ctx, fmt.Sprintf("/order_items/byOrder/%d", orderID))
	if err != nil {
		return nil, err
	}
	return decodeList[order.ItemDetail](data)
}
