package handlers

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/domain/payment"
	"github.com/your-org/storefront/internal/domain/product"
	"github.com/your-org/storefront/internal/domain/user"
)

// memCartBackend is an in-memory cart service
type memCartBackend struct {
	mu     sync.Mutex
	carts  map[int64]*cart.Cart
	items  map[int64]*cart.Item
	nextID int64

	cartErr error
}

func newMemCartBackend() *memCartBackend {
	return &memCartBackend{
		carts:  make(map[int64]*cart.Cart),
		items:  make(map[int64]*cart.Item),
		nextID: 500,
	}
}

func (m *memCartBackend) CartByUser(_ context.Context, userID int64) (*cart.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cartErr != nil {
		return nil, m.cartErr
	}
	c, ok := m.carts[userID]
	if !ok {
		return nil, cart.ErrCartNotFound
	}
	copied := *c
	return &copied, nil
}

func (m *memCartBackend) CreateCart(_ context.Context, userID int64) (*cart.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	c := &cart.Cart{CartID: m.nextID, UserID: userID}
	m.carts[userID] = c
	copied := *c
	return &copied, nil
}

func (m *memCartBackend) Items(_ context.Context, cartID int64) ([]cart.DisplayItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := []cart.DisplayItem{}
	for _, item := range m.items {
		if item.CartID == cartID {
			result = append(result, cart.DisplayItem{
				CartItemID:   item.CartItemID,
				ProductSkuID: item.ProductSkuID,
				ProductPrice: "$10.00",
				Quantity:     item.Quantity,
			})
		}
	}
	return result, nil
}

func (m *memCartBackend) ItemBySKU(_ context.Context, cartID int64, sku product.SKU) (*cart.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range m.items {
		if item.CartID == cartID && item.ProductSkuID == sku {
			copied := *item
			return &copied, nil
		}
	}
	return nil, cart.ErrItemNotFound
}

func (m *memCartBackend) AddItem(_ context.Context, cartID int64, sku product.SKU, quantity int) (*cart.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	item := &cart.Item{CartItemID: m.nextID, CartID: cartID, ProductSkuID: sku, Quantity: quantity}
	m.items[item.CartItemID] = item
	copied := *item
	return &copied, nil
}

func (m *memCartBackend) UpdateItem(_ context.Context, cartItemID int64, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[cartItemID]
	if !ok {
		return cart.ErrItemNotFound
	}
	item.Quantity = quantity
	return nil
}

func (m *memCartBackend) DeleteItem(_ context.Context, cartItemID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, cartItemID)
	return nil
}

func (m *memCartBackend) ClearUser(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.carts[userID]
	if !ok {
		return nil
	}
	for id, item := range m.items {
		if item.CartID == c.CartID {
			delete(m.items, id)
		}
	}
	return nil
}

func (m *memCartBackend) quantities(userID int64) map[product.SKU]int {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make(map[product.SKU]int)
	c, ok := m.carts[userID]
	if !ok {
		return result
	}
	for _, item := range m.items {
		if item.CartID == c.CartID {
			result[item.ProductSkuID] = item.Quantity
		}
	}
	return result
}

// stubUserBackend accepts one email/password pair
type stubUserBackend struct {
	email    string
	password string
	userID   int64
}

func (s *stubUserBackend) Login(_ context.Context, payload user.LoginPayload) (*user.AuthReply, error) {
	if payload.Email == s.email && payload.Password == s.password {
		return &user.AuthReply{UserID: s.userID, Message: "Login successful"}, nil
	}
	return &user.AuthReply{Message: "Invalid credentials"}, nil
}

func (s *stubUserBackend) CreateUser(_ context.Context, payload user.SignupPayload) (*user.AuthReply, error) {
	if payload.Email == s.email {
		return &user.AuthReply{Errors: map[string]string{"email": "Email already registered"}}, nil
	}
	return &user.AuthReply{UserID: s.userID + 1}, nil
}

func (s *stubUserBackend) Addresses(_ context.Context, userID int64) ([]user.Address, error) {
	return []user.Address{{AddressID: 1, UserID: userID, City: "Springfield"}}, nil
}

// memOrderBackend stores orders by id and keeps every update it receives
type memOrderBackend struct {
	mu      sync.Mutex
	orders  map[int64]*order.Order
	updates []order.OrderPayload
}

func newMemOrderBackend(orders ...order.Order) *memOrderBackend {
	m := &memOrderBackend{orders: make(map[int64]*order.Order)}
	for i := range orders {
		stored := orders[i]
		m.orders[stored.OrderID] = &stored
	}
	return m
}

func (m *memOrderBackend) CreateOrder(_ context.Context, payload order.OrderPayload) (*order.Order, error) {
	return nil, errors.New("not used")
}

func (m *memOrderBackend) CreateItems(_ context.Context, _ []order.ItemPayload) error {
	return nil
}

func (m *memOrderBackend) UpdateOrder(_ context.Context, orderID int64, payload order.OrderPayload) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates = append(m.updates, payload)
	if stored, ok := m.orders[orderID]; ok {
		stored.Status = payload.Status
	}
	return nil
}

func (m *memOrderBackend) OrdersByUser(_ context.Context, _ int64, _, _ int) ([]order.Order, error) {
	return nil, nil
}

func (m *memOrderBackend) OrderByID(_ context.Context, orderID int64) (*order.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.orders[orderID]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	copied := *stored
	return &copied, nil
}

func (m *memOrderBackend) updateCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.updates)
}

// fakePaymentFunctions plays the payment function app for both gateways.
// err, when set, is returned by every call as a transport failure.
type fakePaymentFunctions struct {
	mu        sync.Mutex
	charged   []payment.ProcessRequest
	initiated []payment.CreateOrderRequest
	verified  []payment.VerifyRequest

	approve bool
	err     error
}

func (f *fakePaymentFunctions) GenerateClientToken(_ context.Context) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "client-token", nil
}

func (f *fakePaymentFunctions) ProcessPayment(_ context.Context, req payment.ProcessRequest) (*payment.ProcessResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.charged = append(f.charged, req)
	if !f.approve {
		return &payment.ProcessResponse{Message: "Card declined"}, nil
	}
	return &payment.ProcessResponse{Success: true, TransactionID: "bt_txn"}, nil
}

func (f *fakePaymentFunctions) CreateOrderUSD(_ context.Context, req payment.CreateOrderRequest) (*payment.RazorpayOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.initiated = append(f.initiated, req)
	return &payment.RazorpayOrder{
		OrderAmount: decimal.NewFromFloat(req.Amount).Shift(2).IntPart(),
		Currency:    "USD",
		Key:         "rzp_test",
		OrderID:     "order_rzp_1",
	}, nil
}

func (f *fakePaymentFunctions) VerifyPayment(_ context.Context, req payment.VerifyRequest) (*payment.VerifyResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.verified = append(f.verified, req)
	if !f.approve {
		return &payment.VerifyResponse{Message: "Signature mismatch"}, nil
	}
	return &payment.VerifyResponse{Success: true, PaymentMethod: "upi", TransactionID: req.PaymentID}, nil
}

// memPaymentRecords keeps the payment rows written by the orchestrator
type memPaymentRecords struct {
	mu      sync.Mutex
	records []payment.Record
}

func (m *memPaymentRecords) CreatePayment(_ context.Context, record payment.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, record)
	return nil
}

func (m *memPaymentRecords) all() []payment.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]payment.Record(nil), m.records...)
}
