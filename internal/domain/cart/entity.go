// internal/domain/cart/entity.go
package cart

import (
	"github.com/your-org/storefront/internal/domain/product"
)

// Cart is the server-side cart owned by one user
type Cart struct {
	CartID    int64  `json:"cartId"`
	UserID    int64  `json:"userId"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// Item is a stored cart line, unique per (CartID, ProductSkuID)
type Item struct {
	CartItemID   int64       `json:"cartItemId"`
	CartID       int64       `json:"cartId"`
	ProductSkuID product.SKU `json:"productSkuId"`
	Quantity     int         `json:"quantity"`
}

// DisplayItem is a cart line joined with product details by the cart service
type DisplayItem struct {
	CartItemID   int64             `json:"cartItemId"`
	ProductSkuID product.SKU       `json:"productSkuId"`
	ProductID    product.ProductID `json:"productId"`
	ProductTitle string            `json:"productTitle"`
	ProductPrice string            `json:"productPrice"`
	ProductImage string            `json:"productImage"`
	ProductSize  string            `json:"productSize"`
	ProductColor string            `json:"productColor"`
	IsOutOfStock bool              `json:"isOutOfStock"`
	Quantity     int               `json:"quantity"`
}

// View is a cart with its display lines
type View struct {
	Cart  *Cart         `json:"cart"`
	Items []DisplayItem `json:"items"`
}

// Count sums the quantities of the view's lines
func (v *View) Count() int {
	if v == nil {
		return 0
	}
	total := 0
	for _, item := range v.Items {
		total += item.Quantity
	}
	return total
}

// Find returns the line holding sku
func (v *View) Find(sku product.SKU) (DisplayItem, bool) {
	if v == nil {
		return DisplayItem{}, false
	}
	for _, item := range v.Items {
		if item.ProductSkuID == sku {
			return item, true
		}
	}
	return DisplayItem{}, false
}

// LookupStatus classifies the answer to "is this SKU in the cart?"
type LookupStatus int

const (
	LookupFound LookupStatus = iota
	LookupNotFound
	LookupFailed
)

func (s LookupStatus) String() string {
	switch s {
	case LookupFound:
		return "found"
	case LookupNotFound:
		return "not_found"
	default:
		return "failed"
	}
}

// ItemLookup is the result of FindItem. Item is set only when Found and Err only when Failed.
type ItemLookup struct {
	Status LookupStatus
	Item   *Item
	Err    error
}
