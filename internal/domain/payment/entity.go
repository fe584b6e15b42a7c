// internal/domain/payment/entity.go
package payment

// Record is one payment row, written once per attempt outcome
type Record struct {
	PaymentMethod  string  `json:"paymentMethod"`
	PaymentStatus  string  `json:"paymentStatus"`
	PaymentDate    string  `json:"paymentDate"`
	Amount         float64 `json:"amount"`
	OrderID        int64   `json:"orderId"`
	UserID         int64   `json:"userId"`
	TransactionID  string  `json:"transactionId"`
	PaymentGateway Gateway `json:"paymentGateway"`
}

// CreateOrderRequest asks the function app for a Razorpay order
type CreateOrderRequest struct {
	Amount float64 `json:"Amount"`
}

// RazorpayOrder is the gateway order the browser checkout opens
type RazorpayOrder struct {
	OrderAmount int64  `json:"orderAmount"`
	Currency    string `json:"currency"`
	Key         string `json:"key"`
	OrderID     string `json:"orderId"`
}

// VerifyRequest carries the handler response or the failure metadata
type VerifyRequest struct {
	PaymentID string `json:"PaymentId"`
	OrderID   string `json:"OrderId"`
	Signature string `json:"Signature"`
}

// VerifyResponse is the function app's verification verdict
type VerifyResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	PaymentMethod string `json:"paymentMethod"`
	TransactionID string `json:"transactionId"`
}

// BillingAddress is the billing block of a Braintree charge
type BillingAddress struct {
	StreetAddress     string `json:"streetAddress"`
	Locality          string `json:"locality"`
	PostalCode        string `json:"postalCode"`
	CountryCodeAlpha2 string `json:"countryCodeAlpha2"`
}

// ProcessRequest charges a drop-in nonce
type ProcessRequest struct {
	PaymentMethodNonce string         `json:"paymentMethodNonce"`
	Amount             float64        `json:"amount"`
	FirstName          string         `json:"firstName"`
	Email              string         `json:"email"`
	BillingAddress     BillingAddress `json:"BillingAddress"`
}

// ProcessResponse is the result of a Braintree charge
type ProcessResponse struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transactionId"`
	Message       string `json:"message"`
}
