// internal/domain/payment/ports.go
package payment

import (
	"context"

	"github.com/your-org/storefront/internal/domain/order"
)

// RazorpayAPI is the payment function app's Razorpay surface
type RazorpayAPI interface {
	CreateOrderUSD(ctx context.Context, req CreateOrderRequest) (*RazorpayOrder, error)
	VerifyPayment(ctx context.Context, req VerifyRequest) (*VerifyResponse, error)
}

// BraintreeAPI is the payment function app's Braintree surface
type BraintreeAPI interface {
	GenerateClientToken(ctx context.Context) (string, error)
	ProcessPayment(ctx context.Context, req ProcessRequest) (*ProcessResponse, error)
}

// RecordAPI appends payment rows to the payment service
type RecordAPI interface {
	CreatePayment(ctx context.Context, record Record) error
}

// OrderUpdater changes an order's status
type OrderUpdater interface {
	UpdateStatus(ctx context.Context, req order.UpdateRequest) error
}

// CartClearer empties a user's server cart
type CartClearer interface {
	ClearForUser(ctx context.Context, userID int64) error
}

// IncidentRecorder persists failed bookkeeping steps
type IncidentRecorder interface {
	Record(ctx context.Context, incident *Incident) error
}
