// internal/domain/checkout/entity.go
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

var (
	// ErrEmptyCart is returned when checking out an empty cart
	ErrEmptyCart = errors.New("cart is empty")
	// ErrUnknownDiscount is returned for a code not offered on the cart's SKUs
	ErrUnknownDiscount = errors.New("discount code is not available for this cart")
	// ErrConfirmFailed is returned when an order was created but its items were not
	ErrConfirmFailed = errors.New("failed to confirm order items")
)

// PaymentPath is where the shopper goes after an order is placed
const PaymentPath = "/payment"

// Discount is a promotion offered by the discount service
type Discount struct {
	DiscountID   int64       `json:"discountId"`
	Code         string      `json:"code"`
	Description  string      `json:"description,omitempty"`
	ProductSkuID product.SKU `json:"productSkuId"`
	IsActive     *bool       `json:"isActive,omitempty"`
	ValidTo      string      `json:"validTo,omitempty"`
}

// DiscountQuery lists discounts for a set of SKUs
type DiscountQuery struct {
	ProductSkuID []product.SKU `json:"productSkuId"`
}

// CalculateRequest asks the discount function to price a code
type CalculateRequest struct {
	ProductSkuID []product.SKU `json:"productSkuId"`
	TotalPrice   float64       `json:"totalPrice"`
	DiscountCode string        `json:"discountCode"`
}

// Calculation is the discount function's answer
type Calculation struct {
	DiscountAmount money.Price `json:"DiscountAmount"`
	FinalPrice     money.Price `json:"FinalPrice"`
}

// SummaryLine is one cart line priced for review
type SummaryLine struct {
	ProductSkuID   product.SKU       `json:"productSkuId"`
	ProductID      product.ProductID `json:"productId"`
	Name           string            `json:"name"`
	Size           string            `json:"size,omitempty"`
	Color          string            `json:"color,omitempty"`
	Quantity       int               `json:"quantity"`
	Price          money.Price       `json:"price"`
	TotalItemPrice money.Price       `json:"totalItemPrice"`
	Image          string            `json:"image"`
}

// Summary is the checkout review snapshot
type Summary struct {
	Lines           []SummaryLine `json:"lines"`
	Subtotal        money.Price   `json:"subtotal"`
	Discount        money.Price   `json:"discount"`
	Total           money.Price   `json:"total"`
	AppliedDiscount *Discount     `json:"appliedDiscount,omitempty"`
	Display         DisplayTotals `json:"display"`
}

// DisplayTotals are the summary amounts formatted for display
type DisplayTotals struct {
	Subtotal string `json:"subtotal"`
	Discount string `json:"discount"`
	Total    string `json:"total"`
}

// PlaceRequest represents place order request
type PlaceRequest struct {
	UserID       int64
	AddressID    int64
	DiscountCode string
}

// Placement is a created and confirmed order awaiting payment
type Placement struct {
	OrderID   int64       `json:"orderId"`
	AddressID int64       `json:"addressId"`
	Total     money.Price `json:"totalAmount"`
	Redirect  string      `json:"redirect"`
}

// OrderLines converts the summary into order lines
func (s *Summary) OrderLines() []order.Line {
	lines := make([]order.Line, 0, len(s.Lines))
	for _, line := range s.Lines {
		lines = append(lines, order.Line{
			SKU:       line.ProductSkuID,
			Title:     line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.Price.Decimal,
		})
	}
	return lines
}

// SKUs lists the summary's SKUs in line order
func (s *Summary) SKUs() []product.SKU {
	skus := make([]product.SKU, 0, len(s.Lines))
	for _, line := range s.Lines {
		skus = append(skus, line.ProductSkuID)
	}
	return skus
}

// Carts is the cart access checkout needs
type Carts interface {
	GetCart(ctx context.Context, userID int64) (*cart.View, error)
	Invalidate(ctx context.Context, userID int64)
}

// Orders is the order access checkout needs
type Orders interface {
	CreateOrder(ctx context.Context, req order.CreateRequest) (int64, error)
	ConfirmItems(ctx context.Context, orderID int64, lines []order.Line) error
	Cancel(ctx context.Context, req order.UpdateRequest) error
}

// DiscountAPI is the discount service and discount function
type DiscountAPI interface {
	DiscountData(ctx context.Context, query DiscountQuery) ([]Discount, error)
	CalculateDiscount(ctx context.Context, req CalculateRequest) (*Calculation, error)
}

func priceOf(d decimal.Decimal) money.Price {
	return money.NewPrice(d.Round(2))
}
