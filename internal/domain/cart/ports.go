// internal/domain/cart/ports.go
package cart

import (
	"context"
	"errors"

	"github.com/your-org/storefront/internal/domain/product"
)

var (
	// ErrCartNotFound means the user has no server cart yet
	ErrCartNotFound = errors.New("cart not found")
	// ErrItemNotFound means the cart holds no line for the SKU
	ErrItemNotFound = errors.New("cart item not found")
	// ErrCacheMiss is returned by a Cache that holds no view for the user
	ErrCacheMiss = errors.New("cart cache miss")
	// ErrInvalidQuantity is returned when adding less than one unit
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// Backend is the cart REST service. Implementations report absence with
// ErrCartNotFound or ErrItemNotFound and any other failure as a plain error.
type Backend interface {
	CartByUser(ctx context.Context, userID int64) (*Cart, error)
	CreateCart(ctx context.Context, userID int64) (*Cart, error)
	Items(ctx context.Context, cartID int64) ([]DisplayItem, error)
	ItemBySKU(ctx context.Context, cartID int64, sku product.SKU) (*Item, error)
	AddItem(ctx context.Context, cartID int64, sku product.SKU, quantity int) (*Item, error)
	UpdateItem(ctx context.Context, cartItemID int64, quantity int) error
	DeleteItem(ctx context.Context, cartItemID int64) error
	ClearUser(ctx context.Context, userID int64) error
}

// Cache stores cart views per user
type Cache interface {
	Get(ctx context.Context, userID int64) (*View, error)
	Set(ctx context.Context, userID int64, view *View) error
	Delete(ctx context.Context, userID int64) error
}

// ImageResolver enriches lines with product images
type ImageResolver interface {
	Resolve(ctx context.Context, skus []product.SKU, pick product.ImagePick) product.ResolvedImages
}
