// internal/domain/payment/braintree_service.go
package payment

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	// braintreeMethod is the method recorded for drop-in payments
	braintreeMethod = "card"
	// defaultCountryCode is used when the address carries no country
	defaultCountryCode = "IN"
)

// BraintreeGateway drives the drop-in UI checkout
type BraintreeGateway struct {
	api    BraintreeAPI
	logger logrus.FieldLogger
}

// NewBraintreeGateway creates a new Braintree gateway adapter
func NewBraintreeGateway(api BraintreeAPI, logger logrus.FieldLogger) *BraintreeGateway {
	return &BraintreeGateway{
		api:    api,
		logger: logger,
	}
}

// DropInCharge is a nonce collected by the drop-in UI plus who pays
type DropInCharge struct {
	Nonce     string
	Amount    decimal.Decimal
	FirstName string
	Email     string
	Billing   BillingAddress
}

// ClientToken returns a token the browser uses to render the drop-in UI
func (g *BraintreeGateway) ClientToken(ctx context.Context) (string, error) {
	token, err := g.api.GenerateClientToken(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to generate Braintree client token: %w", err)
	}
	if token == "" {
		return "", fmt.Errorf("failed to generate Braintree client token: empty token")
	}
	return token, nil
}

// Charge captures a nonce. A transport failure is an error; a declined
// charge is a Failure result.
func (g *BraintreeGateway) Charge(ctx context.Context, charge DropInCharge) (Result, error) {
	if charge.Nonce == "" {
		return nil, fmt.Errorf("payment method nonce is required")
	}
	if !charge.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	billing := charge.Billing
	if billing.CountryCodeAlpha2 == "" {
		billing.CountryCodeAlpha2 = defaultCountryCode
	}

	resp, err := g.api.ProcessPayment(ctx, ProcessRequest{
		PaymentMethodNonce: charge.Nonce,
		Amount:             charge.Amount.Round(2).InexactFloat64(),
		FirstName:          charge.FirstName,
		Email:              charge.Email,
		BillingAddress:     billing,
	})
	if err != nil {
		return nil, fmt.Errorf("Braintree charge failed: %w", err)
	}
	if resp == nil {
		return nil, fmt.Errorf("Braintree charge failed: empty response")
	}

	if resp.Success {
		return Success{
			TransactionID: resp.TransactionID,
			Gateway:       GatewayBraintree,
			Method:        braintreeMethod,
			Message:       "Payment succeeded!",
		}, nil
	}

	reason := resp.Message
	if reason == "" {
		reason = "Unknown"
	}
	return Failure{
		Reason:        "Payment failed: " + reason,
		Gateway:       GatewayBraintree,
		TransactionID: resp.TransactionID,
		Method:        braintreeMethod,
	}, nil
}
