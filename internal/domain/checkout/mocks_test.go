package checkout

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/domain/product"
	"github.com/your-org/storefront/internal/pkg/money"
)

// mockCartBackend serves one fixed cart and records clears
type mockCartBackend struct {
	cart    *cart.Cart
	items   []cart.DisplayItem
	cleared []int64
}

func (m *mockCartBackend) CartByUser(context.Context, int64) (*cart.Cart, error) {
	if m.cart == nil {
		return nil, cart.ErrCartNotFound
	}
	return m.cart, nil
}

func (m *mockCartBackend) CreateCart(_ context.Context, userID int64) (*cart.Cart, error) {
	m.cart = &cart.Cart{CartID: 1, UserID: userID}
	return m.cart, nil
}

func (m *mockCartBackend) Items(context.Context, int64) ([]cart.DisplayItem, error) {
	items := make([]cart.DisplayItem, len(m.items))
	copy(items, m.items)
	return items, nil
}

func (m *mockCartBackend) ItemBySKU(context.Context, int64, product.SKU) (*cart.Item, error) {
	return nil, cart.ErrItemNotFound
}

func (m *mockCartBackend) AddItem(context.Context, int64, product.SKU, int) (*cart.Item, error) {
	return nil, errors.New("not supported")
}

func (m *mockCartBackend) UpdateItem(context.Context, int64, int) error { return nil }

func (m *mockCartBackend) DeleteItem(context.Context, int64) error { return nil }

func (m *mockCartBackend) ClearUser(_ context.Context, userID int64) error {
	m.cleared = append(m.cleared, userID)
	m.items = nil
	return nil
}

// mockOrderBackend records order service calls
type mockOrderBackend struct {
	nextOrderID int64
	itemsErr    error

	created []order.OrderPayload
	batches [][]order.ItemPayload
	updates map[int64][]order.OrderPayload
}

func newMockOrderBackend(nextOrderID int64) *mockOrderBackend {
	return &mockOrderBackend{nextOrderID: nextOrderID, updates: make(map[int64][]order.OrderPayload)}
}

func (m *mockOrderBackend) CreateOrder(_ context.Context, payload order.OrderPayload) (*order.Order, error) {
	m.created = append(m.created, payload)
	return &order.Order{OrderID: m.nextOrderID}, nil
}

func (m *mockOrderBackend) CreateItems(_ context.Context, items []order.ItemPayload) error {
	if m.itemsErr != nil {
		return m.itemsErr
	}
	m.batches = append(m.batches, items)
	return nil
}

func (m *mockOrderBackend) UpdateOrder(_ context.Context, orderID int64, payload order.OrderPayload) error {
	m.updates[orderID] = append(m.updates[orderID], payload)
	return nil
}

func (m *mockOrderBackend) OrdersByUser(context.Context, int64, int, int) ([]order.Order, error) {
	return nil, nil
}

// OrderByID serves the last created order under the next order id
func (m *mockOrderBackend) OrderByID(_ context.Context, orderID int64) (*order.Order, error) {
	if orderID != m.nextOrderID || len(m.created) == 0 {
		return nil, order.ErrOrderNotFound
	}
	created := m.created[len(m.created)-1]
	return &order.Order{
		OrderID:     orderID,
		UserID:      created.UserID,
		AddressID:   created.AddressID,
		TotalAmount: money.NewPrice(decimal.NewFromFloat(created.TotalAmount)),
		Status:      created.Status,
	}, nil
}

// mockDiscountAPI serves fixed discounts
type mockDiscountAPI struct {
	discounts   []Discount
	calculation *Calculation
	requests    []CalculateRequest
}

func (m *mockDiscountAPI) DiscountData(context.Context, DiscountQuery) ([]Discount, error) {
	return m.discounts, nil
}

func (m *mockDiscountAPI) CalculateDiscount(_ context.Context, req CalculateRequest) (*Calculation, error) {
	m.requests = append(m.requests, req)
	return m.calculation, nil
}
