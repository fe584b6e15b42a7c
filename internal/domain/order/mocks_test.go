package order

import (
	"context"
)

// MockBackend records calls made to the order service
type MockBackend struct {
	NextOrderID int64
	CreateErr   error
	ItemsErr    error
	UpdateErr   error
	ListErr     error

	Created []OrderPayload
	Items   [][]ItemPayload
	Updates map[int64][]OrderPayload
	Orders  []Order
	Stored  map[int64]*Order
	Calls   int
}

func NewMockBackend(nextOrderID int64) *MockBackend {
	return &MockBackend{
		NextOrderID: nextOrderID,
		Updates:     make(map[int64][]OrderPayload),
		Stored:      make(map[int64]*Order),
	}
}

func (m *MockBackend) CreateOrder(_ context.Context, payload OrderPayload) (*Order, error) {
	m.Calls++
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	m.Created = append(m.Created, payload)
	return &Order{OrderID: m.NextOrderID, UserID: payload.UserID, AddressID: payload.AddressID, Status: payload.Status}, nil
}

func (m *MockBackend) CreateItems(_ context.Context, items []ItemPayload) error {
	m.Calls++
	if m.ItemsErr != nil {
		return m.ItemsErr
	}
	m.Items = append(m.Items, items)
	return nil
}

func (m *MockBackend) UpdateOrder(_ context.Context, orderID int64, payload OrderPayload) error {
	m.Calls++
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.Updates[orderID] = append(m.Updates[orderID], payload)
	return nil
}

func (m *MockBackend) OrdersByUser(_ context.Context, _ int64, _, _ int) ([]Order, error) {
	m.Calls++
	return m.Orders, m.ListErr
}

func (m *MockBackend) OrderByID(_ context.Context, orderID int64) (*Order, error) {
	m.Calls++
	stored, ok := m.Stored[orderID]
	if !ok {
		return nil, ErrOrderNotFound
	}
	copied := *stored
	return &copied, nil
}
