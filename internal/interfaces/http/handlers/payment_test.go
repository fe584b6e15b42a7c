package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/domain/payment"
	"github.com/your-org/storefront/internal/domain/product"
	"github.com/your-org/storefront/internal/infrastructure/backend"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
	"github.com/your-org/storefront/internal/pkg/auth"
	"github.com/your-org/storefront/internal/pkg/money"
)

const shopperID = int64(7)

type paymentEnv struct {
	*testEnv
	orders    *memOrderBackend
	functions *fakePaymentFunctions
	records   *memPaymentRecords
	token     string
}

func setupPaymentEnv(t *testing.T) *paymentEnv {
	gin.SetMode(gin.TestMode)

	logger, _ := test.NewNullLogger()
	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:             "handler-tests-secret-at-least-32-chars",
			AccessTokenExpiry:  time.Hour,
			RefreshTokenExpiry: 24 * time.Hour,
		},
	}
	jwtManager := auth.NewJWTManager(cfg)
	token, err := jwtManager.GenerateAccessToken(shopperID, "shopper@example.com")
	require.NoError(t, err)

	total := money.NewPrice(decimal.RequireFromString("49.99"))
	orders := newMemOrderBackend(
		order.Order{OrderID: 101, UserID: shopperID, AddressID: 5, TotalAmount: total, Status: order.StatusPaymentPending},
		order.Order{OrderID: 102, UserID: 8, AddressID: 9, TotalAmount: total, Status: order.StatusPaymentPending},
		order.Order{OrderID: 103, UserID: shopperID, AddressID: 5, TotalAmount: total, Status: order.StatusPaymentSuccessful},
	)
	functions := &fakePaymentFunctions{approve: true}
	records := &memPaymentRecords{}
	carts := newMemCartBackend()

	orderService := order.NewService(orders, logger)
	cartService := cart.NewService(carts, nil, nil, logger)
	orchestrator := payment.NewOrchestrator(records, orderService, cartService, nil, payment.Policy{}, logger)
	handler := NewPaymentHandler(
		payment.NewBraintreeGateway(functions, logger),
		payment.NewRazorpayGateway(functions, logger),
		orderService,
		orchestrator,
		logger,
	)

	router := gin.New()
	payments := router.Group("/payments", middleware.AuthMiddleware(jwtManager))
	payments.POST("/braintree/charge", handler.BraintreeCharge)
	payments.POST("/razorpay/orders", handler.RazorpayCreateOrder)
	payments.POST("/razorpay/verify", handler.RazorpayVerify)

	return &paymentEnv{
		testEnv:   &testEnv{router: router, carts: carts, jwt: jwtManager},
		orders:    orders,
		functions: functions,
		records:   records,
		token:     token,
	}
}

func (e *paymentEnv) seedCart(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	c, err := e.carts.CreateCart(ctx, shopperID)
	require.NoError(t, err)
	_, err = e.carts.AddItem(ctx, c.CartID, product.SKU("42"), 2)
	require.NoError(t, err)
}

func (e *paymentEnv) assertNothingBooked(t *testing.T) {
	t.Helper()
	assert.Empty(t, e.records.all())
	assert.Zero(t, e.orders.updateCount())
}

type paymentResponse struct {
	Message string          `json:"message"`
	Data    payment.Outcome `json:"data"`
}

func decodePayment(t *testing.T, body []byte) paymentResponse {
	t.Helper()
	var resp paymentResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

func TestBraintreeCharge_ChargesStoredTotalAndRedirects(t *testing.T) {
	env := setupPaymentEnv(t)
	env.seedCart(t)

	rec := env.do(t, http.MethodPost, "/payments/braintree/charge", gin.H{
		"orderId":            101,
		"paymentMethodNonce": "fake-valid-nonce",
	}, nil, env.token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decodePayment(t, rec.Body.Bytes())
	assert.Equal(t, "/order-tracking/101", resp.Data.Redirect)
	assert.True(t, resp.Data.Succeeded)
	assert.Equal(t, payment.StateNavigatedToTracking, resp.Data.State)
	assert.Empty(t, resp.Data.Warnings)

	require.Len(t, env.functions.charged, 1)
	assert.Equal(t, 49.99, env.functions.charged[0].Amount)

	records := env.records.all()
	require.Len(t, records, 1)
	assert.Equal(t, 49.99, records[0].Amount)
	assert.Equal(t, int64(101), records[0].OrderID)
	assert.Equal(t, shopperID, records[0].UserID)
	assert.Equal(t, "true", records[0].PaymentStatus)

	require.Len(t, env.orders.updates, 1)
	assert.Equal(t, order.StatusPaymentSuccessful, env.orders.updates[0].Status)
	assert.Equal(t, int64(5), env.orders.updates[0].AddressID)
	assert.Equal(t, 49.99, env.orders.updates[0].TotalAmount)

	assert.Empty(t, env.carts.quantities(shopperID))
}

func TestBraintreeCharge_DeclineStillRedirects(t *testing.T) {
	env := setupPaymentEnv(t)
	env.functions.approve = false
	env.seedCart(t)

	rec := env.do(t, http.MethodPost, "/payments/braintree/charge", gin.H{
		"orderId":            101,
		"paymentMethodNonce": "fake-declined-nonce",
	}, nil, env.token)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodePayment(t, rec.Body.Bytes())
	assert.False(t, resp.Data.Succeeded)
	assert.Equal(t, "/order-tracking/101", resp.Data.Redirect)
	assert.Equal(t, "Payment failed: Card declined", resp.Message)

	require.Len(t, env.records.all(), 1)
	assert.Equal(t, "false", env.records.all()[0].PaymentStatus)
	assert.Equal(t, order.StatusPaymentFailed, env.orders.updates[0].Status)
	assert.Equal(t, map[product.SKU]int{"42": 2}, env.carts.quantities(shopperID))
}

func TestBraintreeCharge_ClaimsMustMatchStoredOrder(t *testing.T) {
	tests := []struct {
		name string
		body gin.H
	}{
		{"underpaid amount", gin.H{"orderId": 101, "amount": 1, "paymentMethodNonce": "n"}},
		{"other address", gin.H{"orderId": 101, "addressId": 6, "paymentMethodNonce": "n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupPaymentEnv(t)

			rec := env.do(t, http.MethodPost, "/payments/braintree/charge", tt.body, nil, env.token)
			assert.Equal(t, http.StatusConflict, rec.Code)
			assert.Empty(t, env.functions.charged)
			env.assertNothingBooked(t)
		})
	}
}

func TestPayments_RejectOrdersThatCannotBePaid(t *testing.T) {
	tests := []struct {
		name string
		path string
		body gin.H
		want int
	}{
		{"charge another user's order", "/payments/braintree/charge", gin.H{"orderId": 102, "paymentMethodNonce": "n"}, http.StatusNotFound},
		{"verify another user's order", "/payments/razorpay/verify", gin.H{"orderId": 102, "razorpay_payment_id": "pay_1"}, http.StatusNotFound},
		{"open gateway order for another user", "/payments/razorpay/orders", gin.H{"orderId": 102}, http.StatusNotFound},
		{"charge a missing order", "/payments/braintree/charge", gin.H{"orderId": 999, "paymentMethodNonce": "n"}, http.StatusNotFound},
		{"charge a paid order", "/payments/braintree/charge", gin.H{"orderId": 103, "paymentMethodNonce": "n"}, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupPaymentEnv(t)

			rec := env.do(t, http.MethodPost, tt.path, tt.body, nil, env.token)
			assert.Equal(t, tt.want, rec.Code)
			assert.Empty(t, env.functions.charged)
			assert.Empty(t, env.functions.verified)
			assert.Empty(t, env.functions.initiated)
			env.assertNothingBooked(t)
		})
	}
}

func TestPayments_RequireAuthentication(t *testing.T) {
	env := setupPaymentEnv(t)

	rec := env.do(t, http.MethodPost, "/payments/braintree/charge", gin.H{"orderId": 101, "paymentMethodNonce": "n"}, nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	env.assertNothingBooked(t)
}

func TestRazorpayCreateOrder_UsesStoredTotal(t *testing.T) {
	env := setupPaymentEnv(t)

	rec := env.do(t, http.MethodPost, "/payments/razorpay/orders", gin.H{"orderId": 101}, nil, env.token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Data payment.RazorpayOrder `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(4999), resp.Data.OrderAmount)
	require.Len(t, env.functions.initiated, 1)
	assert.Equal(t, 49.99, env.functions.initiated[0].Amount)
}

func TestRazorpayVerify_RecordsGatewayOrderAmount(t *testing.T) {
	env := setupPaymentEnv(t)

	rec := env.do(t, http.MethodPost, "/payments/razorpay/verify", gin.H{
		"orderId":             101,
		"razorpay_payment_id": "pay_1",
		"razorpay_order_id":   "order_rzp_1",
		"razorpay_signature":  "sig",
		"orderAmount":         4999,
	}, nil, env.token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decodePayment(t, rec.Body.Bytes())
	assert.True(t, resp.Data.Succeeded)
	assert.Equal(t, "/order-tracking/101", resp.Data.Redirect)

	records := env.records.all()
	require.Len(t, records, 1)
	assert.Equal(t, 49.99, records[0].Amount)
	assert.Equal(t, "pay_1", records[0].TransactionID)
	assert.Equal(t, payment.GatewayRazorpay, records[0].PaymentGateway)
	assert.Equal(t, "upi", records[0].PaymentMethod)
}

func TestRazorpayVerify_GatewayAmountMustMatchOrder(t *testing.T) {
	env := setupPaymentEnv(t)

	rec := env.do(t, http.MethodPost, "/payments/razorpay/verify", gin.H{
		"orderId":             101,
		"razorpay_payment_id": "pay_1",
		"orderAmount":         100,
	}, nil, env.token)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Empty(t, env.functions.verified)
	env.assertNothingBooked(t)
}

func TestPayments_TransportFailureRecordsNothing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		path string
		body gin.H
		want int
	}{
		{
			name: "charge behind an open breaker",
			err:  gobreaker.ErrOpenState,
			path: "/payments/braintree/charge",
			body: gin.H{"orderId": 101, "paymentMethodNonce": "n"},
			want: http.StatusServiceUnavailable,
		},
		{
			name: "verify against a failing function app",
			err:  &backend.StatusError{Service: "payment", Method: http.MethodPost, Path: "/VerifyPayment", StatusCode: http.StatusInternalServerError},
			path: "/payments/razorpay/verify",
			body: gin.H{"orderId": 101, "razorpay_payment_id": "pay_1", "orderAmount": 4999},
			want: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupPaymentEnv(t)
			env.functions.err = tt.err
			env.seedCart(t)

			rec := env.do(t, http.MethodPost, tt.path, tt.body, nil, env.token)
			assert.Equal(t, tt.want, rec.Code)
			env.assertNothingBooked(t)
			assert.Equal(t, map[product.SKU]int{"42": 2}, env.carts.quantities(shopperID))
		})
	}
}
