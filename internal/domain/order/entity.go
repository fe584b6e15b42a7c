// internal/domain/order/entity.go
package order

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/your-org/storefront/internal/domain/product"
	"github.com/your-org/storefront/internal/pkg/money"
)

// Status is the order status string understood by the order service
type Status string

const (
	StatusPaymentPending    Status = "Payment Pending"
	StatusPaymentSuccessful Status = "Payment Successful"
	StatusPaymentFailed     Status = "Payment Failed"
	StatusCancelled         Status = "Cancelled"
)

// Order represents an order as stored by the order service
type Order struct {
	OrderID     int64       `json:"orderId"`
	UserID      int64       `json:"userId"`
	AddressID   int64       `json:"addressId"`
	TotalAmount money.Price `json:"totalAmount"`
	Status      Status      `json:"status"`
	OrderDate   string      `json:"orderDate"`
}

// Matches checks what a payment request claims against the stored order.
// Zero values are not claims and always match.
func (o *Order) Matches(addressID int64, amount decimal.Decimal) error {
	if addressID != 0 && addressID != o.AddressID {
		return fmt.Errorf("%w: address %d on order %d", ErrOrderMismatch, addressID, o.OrderID)
	}
	if !amount.IsZero() && !amount.Round(2).Equal(o.TotalAmount.Round(2)) {
		return fmt.Errorf("%w: amount %s on order %d of %s", ErrOrderMismatch, amount.StringFixed(2), o.OrderID, o.TotalAmount.StringFixed(2))
	}
	return nil
}

// Line is one priced line taken from the cart at checkout time
type Line struct {
	SKU       product.SKU     `json:"productSkuId"`
	Title     string          `json:"title"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// Total returns unit price times quantity
func (l Line) Total() decimal.Decimal {
	return money.LineTotal(l.UnitPrice, l.Quantity)
}

// ItemDetail is an order line as displayed by the order service
type ItemDetail struct {
	OrderItemID    int64             `json:"orderItemId,omitempty"`
	ProductSkuID   product.SKU       `json:"productSkuId"`
	ProductID      product.ProductID `json:"productId,omitempty"`
	ProductName    string            `json:"productName"`
	ProductPrice   money.Price       `json:"productPrice"`
	TotalItemPrice money.Price       `json:"totalItemPrice"`
	ProductSize    string            `json:"productSize,omitempty"`
	ProductColor   string            `json:"productColor,omitempty"`
	Quantity       int               `json:"quantity"`
	ImageURL       string            `json:"imageUrl,omitempty"`
}

// CreateRequest represents create order request
type CreateRequest struct {
	UserID      int64
	AddressID   int64
	TotalAmount decimal.Decimal
}

// UpdateRequest represents order status update request
type UpdateRequest struct {
	OrderID     int64
	Status      Status
	TotalAmount decimal.Decimal
	UserID      int64
	AddressID   int64
}

// ListRequest pages through a user's orders
type ListRequest struct {
	UserID     int64
	PageNumber int
	PageSize   int
}

// OrderPayload is the body of order create and update calls
type OrderPayload struct {
	OrderDate   string  `json:"orderDate"`
	Status      Status  `json:"status"`
	TotalAmount float64 `json:"totalAmount"`
	UserID      int64   `json:"userId"`
	AddressID   int64   `json:"addressId"`
}

// ItemPayload is one element of the order items batch
type ItemPayload struct {
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
	OrderID      int64   `json:"orderId"`
	ProductSkuID int64   `json:"productSkuId"`
}
