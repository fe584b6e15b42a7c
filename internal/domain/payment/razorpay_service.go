// internal/domain/payment/razorpay_service.go
package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/pkg/money"
)

// ErrInvalidAmount is returned when a payment amount is not positive
var ErrInvalidAmount = errors.New("payment amount must be greater than zero")

// RazorpayGateway drives the redirect/handler style checkout
type RazorpayGateway struct {
	api    RazorpayAPI
	logger logrus.FieldLogger
}

// NewRazorpayGateway creates a new Razorpay gateway adapter
func NewRazorpayGateway(api RazorpayAPI, logger logrus.FieldLogger) *RazorpayGateway {
	return &RazorpayGateway{
		api:    api,
		logger: logger,
	}
}

// RazorpayCallback is what the browser checkout reports back: either the
// handler response with a signature, or the failure metadata without one.
type RazorpayCallback struct {
	PaymentID      string `json:"razorpay_payment_id"`
	GatewayOrderID string `json:"razorpay_order_id"`
	Signature      string `json:"razorpay_signature"`
	OrderAmount    int64  `json:"orderAmount"`
}

// Initiate creates the gateway order for amount
func (g *RazorpayGateway) Initiate(ctx context.Context, amount decimal.Decimal) (*RazorpayOrder, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	gatewayOrder, err := g.api.CreateOrderUSD(ctx, CreateOrderRequest{Amount: amount.Round(2).InexactFloat64()})
	if err != nil {
		return nil, fmt.Errorf("failed to create Razorpay order: %w", err)
	}
	if gatewayOrder == nil || gatewayOrder.OrderID == "" {
		return nil, fmt.Errorf("failed to create Razorpay order: empty response")
	}

	g.logger.WithFields(logrus.Fields{
		"gateway_order_id": gatewayOrder.OrderID,
		"order_amount":     gatewayOrder.OrderAmount,
	}).Info("Razorpay order created")

	return gatewayOrder, nil
}

// Verify asks the function app to verify a callback. Failed attempts are
// verified too, so they can be recorded like successful ones.
func (g *RazorpayGateway) Verify(ctx context.Context, callback RazorpayCallback) (Result, error) {
	verdict, err := g.api.VerifyPayment(ctx, VerifyRequest{
		PaymentID: callback.PaymentID,
		OrderID:   callback.GatewayOrderID,
		Signature: callback.Signature,
	})
	if err != nil {
		return nil, fmt.Errorf("payment verification failed: %w", err)
	}
	if verdict == nil {
		return nil, fmt.Errorf("payment verification failed: empty response")
	}

	if verdict.Success {
		return Success{
			TransactionID: verdict.TransactionID,
			Gateway:       GatewayRazorpay,
			Method:        verdict.PaymentMethod,
			Message:       verdict.Message,
		}, nil
	}

	reason := strings.TrimSpace(verdict.Message)
	if reason == "" {
		reason = "Payment failed."
	}
	return Failure{
		Reason:        reason,
		Gateway:       GatewayRazorpay,
		TransactionID: verdict.TransactionID,
		Method:        verdict.PaymentMethod,
	}, nil
}

// RecordedAmount converts the gateway order amount, kept in minor units, to the amount recorded for the payment
func (c RazorpayCallback) RecordedAmount() decimal.Decimal {
	return money.FromMinorUnits(c.OrderAmount)
}
