package cart

import (
	"context"
	"sync"

	"github.com/your-org/storefront/internal/domain/guestcart"
	"github.com/your-org/storefront/internal/domain/product"
)

// MockBackend is an in-memory cart service
type MockBackend struct {
	mu sync.Mutex

	carts  map[int64]*Cart
	items  map[int64]*Item
	nextID int64

	CartErr   error
	CreateErr error
	ItemsErr  error
	LookupErr map[product.SKU]error
	WriteErr  map[product.SKU]error

	// HonorContext makes every call fail once its context is done
	HonorContext bool

	Calls int
}

func NewMockBackend() *MockBackend {
	return &MockBackend{
		carts:     make(map[int64]*Cart),
		items:     make(map[int64]*Item),
		nextID:    100,
		LookupErr: make(map[product.SKU]error),
		WriteErr:  make(map[product.SKU]error),
	}
}

func (m *MockBackend) CartByUser(ctx context.Context, userID int64) (*Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++

	if m.HonorContext && ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if m.CartErr != nil {
		return nil, m.CartErr
	}
	cart, ok := m.carts[userID]
	if !ok {
		return nil, ErrCartNotFound
	}
	copied := *cart
	return &copied, nil
}

func (m *MockBackend) CreateCart(_ context.Context, userID int64) (*Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++

	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	m.nextID++
	cart := &Cart{CartID: m.nextID, UserID: userID}
	m.carts[userID] = cart
	copied := *cart
	return &copied, nil
}

func (m *MockBackend) Items(ctx context.Context, cartID int64) ([]DisplayItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++

	if m.HonorContext && ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if m.ItemsErr != nil {
		return nil, m.ItemsErr
	}
	var result []DisplayItem
	for _, item := range m.items {
		if item.CartID != cartID {
			continue
		}
		result = append(result, DisplayItem{
			CartItemID:   item.CartItemID,
			ProductSkuID: item.ProductSkuID,
			ProductTitle: "Product " + item.ProductSkuID.String(),
			ProductPrice: "$10.00",
			Quantity:     item.Quantity,
		})
	}
	return result, nil
}

func (m *MockBackend) ItemBySKU(_ context.Context, cartID int64, sku product.SKU) (*Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++

	if err := m.LookupErr[sku]; err != nil {
		return nil, err
	}
	for _, item := range m.items {
		if item.CartID == cartID && item.ProductSkuID == sku {
			copied := *item
			return &copied, nil
		}
	}
	return nil, ErrItemNotFound
}

func (m *MockBackend) AddItem(_ context.Context, cartID int64, sku product.SKU, quantity int) (*Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++

	if err := m.WriteErr[sku]; err != nil {
		return nil, err
	}
	m.nextID++
	item := &Item{CartItemID: m.nextID, CartID: cartID, ProductSkuID: sku, Quantity: quantity}
	m.items[item.CartItemID] = item
	copied := *item
	return &copied, nil
}

func (m *MockBackend) UpdateItem(_ context.Context, cartItemID int64, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++

	item, ok := m.items[cartItemID]
	if !ok {
		return ErrItemNotFound
	}
	if err := m.WriteErr[item.ProductSkuID]; err != nil {
		return err
	}
	item.Quantity = quantity
	return nil
}

func (m *MockBackend) DeleteItem(_ context.Context, cartItemID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++

	delete(m.items, cartItemID)
	return nil
}

func (m *MockBackend) ClearUser(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++

	cart, ok := m.carts[userID]
	if !ok {
		return nil
	}
	for id, item := range m.items {
		if item.CartID == cart.CartID {
			delete(m.items, id)
		}
	}
	return nil
}

// ItemsForUser returns the stored lines of the user's cart
func (m *MockBackend) ItemsForUser(userID int64) []Item {
	m.mu.Lock()
	defer m.mu.Unlock()

	cart, ok := m.carts[userID]
	if !ok {
		return nil
	}
	var result []Item
	for _, item := range m.items {
		if item.CartID == cart.CartID {
			result = append(result, *item)
		}
	}
	return result
}

// MockGuestCarts is an in-memory guest cart store
type MockGuestCarts struct {
	Sessions map[string][]guestcart.Item
	GetErr   error
	Cleared  []string
}

func NewMockGuestCarts() *MockGuestCarts {
	return &MockGuestCarts{Sessions: make(map[string][]guestcart.Item)}
}

func (m *MockGuestCarts) Get(_ context.Context, sessionID string) ([]guestcart.Item, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.Sessions[sessionID], nil
}

func (m *MockGuestCarts) Clear(_ context.Context, sessionID string) error {
	delete(m.Sessions, sessionID)
	m.Cleared = append(m.Cleared, sessionID)
	return nil
}

// MockImages resolves every SKU to a fixed URL unless listed as missing
type MockImages struct {
	Missing map[product.SKU]bool
}

func (m MockImages) Resolve(ctx context.Context, skus []product.SKU, pick product.ImagePick) product.ResolvedImages {
	source := imageSourceFunc(func(_ context.Context, sku product.SKU) ([]product.Image, error) {
		if m.Missing[sku] {
			return nil, nil
		}
		return []product.Image{{ImageURL: "https://cdn/" + sku.String() + ".jpg", IsPrimary: true}}, nil
	})
	return product.NewImageResolver(source, "placeholder.png", 4, discardLogger()).Resolve(ctx, skus, pick)
}

type imageSourceFunc func(ctx context.Context, sku product.SKU) ([]product.Image, error)

func (f imageSourceFunc) ImagesBySKU(ctx context.Context, sku product.SKU) ([]product.Image, error) {
	return f(ctx, sku)
}
