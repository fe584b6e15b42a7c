// internal/interfaces/http/handlers/payment.go
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/domain/payment"
	"github.com/your-org/storefront/internal/pkg/money"
)

// PayableOrders loads the caller's order before any money moves
type PayableOrders interface {
	Payable(ctx context.Context, userID, orderID int64) (*order.Order, error)
}

// PaymentHandler drives both gateways and hands their results to the orchestrator
type PaymentHandler struct {
	braintree    *payment.BraintreeGateway
	razorpay     *payment.RazorpayGateway
	orders       PayableOrders
	orchestrator *payment.Orchestrator
	logger       logrus.FieldLogger
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(braintree *payment.BraintreeGateway, razorpay *payment.RazorpayGateway, orders PayableOrders, orchestrator *payment.Orchestrator, logger logrus.FieldLogger) *PaymentHandler {
	return &PaymentHandler{
		braintree:    braintree,
		razorpay:     razorpay,
		orders:       orders,
		orchestrator: orchestrator,
		logger:       logger,
	}
}

// BraintreeChargeRequest is the drop-in form submission. Address and amount
// are optional; when sent they must agree with the stored order.
type BraintreeChargeRequest struct {
	OrderID        int64                  `json:"orderId" binding:"required,min=1"`
	AddressID      int64                  `json:"addressId"`
	Amount         money.Price            `json:"amount"`
	Nonce          string                 `json:"paymentMethodNonce" binding:"required"`
	FirstName      string                 `json:"firstName"`
	Email          string                 `json:"email"`
	BillingAddress payment.BillingAddress `json:"billingAddress"`
}

// RazorpayOrderRequest opens a gateway order for the stored order total
type RazorpayOrderRequest struct {
	OrderID int64       `json:"orderId" binding:"required,min=1"`
	Amount  money.Price `json:"amount"`
}

// RazorpayVerifyRequest is the checkout callback, successful or not
type RazorpayVerifyRequest struct {
	payment.RazorpayCallback
	OrderID   int64       `json:"orderId" binding:"required,min=1"`
	AddressID int64       `json:"addressId"`
	Amount    money.Price `json:"amount"`
}

// BraintreeToken handles GET /payments/braintree/token
func (h *PaymentHandler) BraintreeToken(c *gin.Context) {
	token, err := h.braintree.ClientToken(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to initialize payment")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"clientToken": token},
	})
}

// BraintreeCharge handles POST /payments/braintree/charge
func (h *PaymentHandler) BraintreeCharge(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req BraintreeChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	stored, ok := h.payable(c, userID, req.OrderID, req.AddressID, req.Amount.Decimal)
	if !ok {
		return
	}

	result, err := h.braintree.Charge(c.Request.Context(), payment.DropInCharge{
		Nonce:     req.Nonce,
		Amount:    stored.TotalAmount.Decimal,
		FirstName: req.FirstName,
		Email:     req.Email,
		Billing:   req.BillingAddress,
	})
	if err != nil {
		// no verdict from the gateway, so nothing is recorded
		respondError(c, err, "Payment could not be processed")
		return
	}

	h.complete(c, attemptFor(stored), result)
}

// RazorpayCreateOrder handles POST /payments/razorpay/orders
func (h *PaymentHandler) RazorpayCreateOrder(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req RazorpayOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	stored, ok := h.payable(c, userID, req.OrderID, 0, req.Amount.Decimal)
	if !ok {
		return
	}

	gatewayOrder, err := h.razorpay.Initiate(c.Request.Context(), stored.TotalAmount.Decimal)
	if err != nil {
		respondError(c, err, "Failed to create payment order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gatewayOrder,
	})
}

// RazorpayVerify handles POST /payments/razorpay/verify. The browser calls
// it for failed checkouts too so the attempt is recorded.
func (h *PaymentHandler) RazorpayVerify(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req RazorpayVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	stored, ok := h.payable(c, userID, req.OrderID, req.AddressID, req.Amount.Decimal)
	if !ok {
		return
	}
	// the gateway order amount is what the customer was actually asked to pay
	if req.OrderAmount > 0 {
		if err := stored.Matches(0, req.RecordedAmount()); err != nil {
			h.logger.WithError(err).WithField("order_id", stored.OrderID).Warn("gateway amount differs from order total")
			respondError(c, err, "Payment does not match the order")
			return
		}
	}

	result, err := h.razorpay.Verify(c.Request.Context(), req.RazorpayCallback)
	if err != nil {
		respondError(c, err, "Payment could not be verified")
		return
	}

	h.complete(c, attemptFor(stored), result)
}

// payable loads the caller's order and checks the client's claims against it.
// It answers the request itself when the order cannot be paid.
func (h *PaymentHandler) payable(c *gin.Context, userID, orderID, addressID int64, amount decimal.Decimal) (*order.Order, bool) {
	stored, err := h.orders.Payable(c.Request.Context(), userID, orderID)
	if err != nil {
		respondError(c, err, "Order cannot be paid")
		return nil, false
	}
	if err := stored.Matches(addressID, amount); err != nil {
		h.logger.WithError(err).WithFields(logrus.Fields{
			"order_id": orderID,
			"user_id":  userID,
		}).Warn("payment request does not match the order")
		respondError(c, err, "Payment does not match the order")
		return nil, false
	}
	return stored, true
}

// attemptFor takes every recorded value from the stored order
func attemptFor(stored *order.Order) payment.Attempt {
	return payment.Attempt{
		OrderID:   stored.OrderID,
		UserID:    stored.UserID,
		AddressID: stored.AddressID,
		Amount:    stored.TotalAmount.Decimal,
	}
}

func (h *PaymentHandler) complete(c *gin.Context, attempt payment.Attempt, result payment.Result) {
	outcome := h.orchestrator.Complete(c.Request.Context(), attempt, result)

	c.JSON(http.StatusOK, gin.H{
		"message": outcome.Message,
		"data":    outcome,
	})
}
