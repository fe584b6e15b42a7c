// internal/infrastructure/backend/payment_api.go
package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/your-org/storefront/internal/domain/payment"
)

// PaymentFunctionAPI is the payment function app fronting Razorpay and Braintree
type PaymentFunctionAPI struct {
	client *Client
}

// NewPaymentFunctionAPI creates a payment function adapter
func NewPaymentFunctionAPI(client *Client) *PaymentFunctionAPI {
	return &PaymentFunctionAPI{client: client}
}

// CreateOrderUSD opens a Razorpay order
func (a *PaymentFunctionAPI) CreateOrderUSD(ctx context.Context, req payment.CreateOrderRequest) (*payment.RazorpayOrder, error) {
	var order payment.RazorpayOrder
	if err := a.client.Do(ctx, http.MethodPost, "CreateOrderUSD", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// verdictStatuses are the rejections the function app answers with a verdict
var verdictStatuses = map[int]bool{
	http.StatusBadRequest:          true,
	http.StatusPaymentRequired:     true,
	http.StatusUnprocessableEntity: true,
}

// rejectedVerdict returns the body of a declined payment call. Only verdict
// statuses count, and the body must carry a success field; anything else
// (auth, routing, throttling) stays an error.
func rejectedVerdict(err error) ([]byte, bool) {
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || !verdictStatuses[statusErr.StatusCode] {
		return nil, false
	}
	body, ok := rejectedBody(err)
	if !ok {
		return nil, false
	}
	var reply struct {
		Success *bool `json:"success"`
	}
	if json.Unmarshal(body, &reply) != nil || reply.Success == nil {
		return nil, false
	}
	return body, true
}

// VerifyPayment asks for a verdict on a Razorpay callback. A rejected
// verification that carries a verdict body is returned as the verdict.
func (a *PaymentFunctionAPI) VerifyPayment(ctx context.Context, req payment.VerifyRequest) (*payment.VerifyResponse, error) {
	var verdict payment.VerifyResponse
	err := a.client.Do(ctx, http.MethodPost, "VerifyPayment", req, &verdict)
	if err != nil {
		body, ok := rejectedVerdict(err)
		if !ok || json.Unmarshal(body, &verdict) != nil {
			return nil, err
		}
		verdict.Success = false
	}
	return &verdict, nil
}

// GenerateClientToken returns a Braintree drop-in token
func (a *PaymentFunctionAPI) GenerateClientToken(ctx context.Context) (string, error) {
	var token struct {
		ClientToken string `json:"clientToken"`
	}
	if err := a.client.Do(ctx, http.MethodGet, "GenerateClientToken", nil, &token); err != nil {
		return "", err
	}
	return token.ClientToken, nil
}

// ProcessPayment charges a Braintree nonce. A declined charge that carries
// a result body is returned as the result.
func (a *PaymentFunctionAPI) ProcessPayment(ctx context.Context, req payment.ProcessRequest) (*payment.ProcessResponse, error) {
	var result payment.ProcessResponse
	err := a.client.Do(ctx, http.MethodPost, "ProcessPayment", req, &result)
	if err != nil {
		body, ok := rejectedVerdict(err)
		if !ok || json.Unmarshal(body, &result) != nil {
			return nil, err
		}
		result.Success = false
	}
	return &result, nil
}

// PaymentRecordAPI is the payment service holding payment rows
type PaymentRecordAPI struct {
	client *Client
}

// NewPaymentRecordAPI creates a payment service adapter
func NewPaymentRecordAPI(client *Client) *PaymentRecordAPI {
	return &PaymentRecordAPI{client: client}
}

// CreatePayment appends a payment row
func (a *PaymentRecordAPI) CreatePayment(ctx context.Context, record payment.Record) error {
	if err := a.client.Do(ctx, http.MethodPost, "payments", record, nil); err != nil {
		return fmt.Errorf("failed to create payment record: %w", err)
	}
	return nil
}
