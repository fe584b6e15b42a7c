// internal/domain/guestcart/entity.go
package guestcart

import (
	"github.com/your-org/storefront/internal/domain/product"
)

// Item is one line of an anonymous shopper's cart. The shape matches what the
// storefront kept in browser storage so carts survive a client upgrade.
type Item struct {
	ProductSkuID  product.SKU       `json:"productSkuId"`
	ProductID     product.ProductID `json:"productId"`
	Title         string            `json:"title"`
	ImageURL      string            `json:"imageUrl"`
	UnitPriceText string            `json:"unitPriceText"`
	Quantity      int               `json:"quantity"`
	Size          string            `json:"size,omitempty"`
	Color         string            `json:"color,omitempty"`
	OutOfStock    bool              `json:"outOfStock"`
}

// AddRequest represents add to guest cart request
type AddRequest struct {
	ProductSkuID product.SKU       `json:"productSkuId" binding:"required"`
	ProductID    product.ProductID `json:"productId"`
	Title        string            `json:"title"`
	ImageURL     string            `json:"imageUrl"`
	Price        string            `json:"price"`
	Quantity     int               `json:"quantity" binding:"required,min=1"`
	Size         string            `json:"size"`
	Color        string            `json:"color"`
	OutOfStock   bool              `json:"outOfStock"`
}

// Count sums the quantities of all lines
func Count(items []Item) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

func indexOf(items []Item, sku product.SKU) int {
	for i := range items {
		if items[i].ProductSkuID == sku {
			return i
		}
	}
	return -1
}
