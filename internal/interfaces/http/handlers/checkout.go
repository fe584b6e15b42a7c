// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/checkout"
)

// CheckoutHandler handles checkout endpoints
type CheckoutHandler struct {
	checkout *checkout.Service
	logger   logrus.FieldLogger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *checkout.Service, logger logrus.FieldLogger) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkoutService,
		logger:   logger,
	}
}

// PlaceOrderRequest represents the place order body
type PlaceOrderRequest struct {
	AddressID    int64  `json:"addressId" binding:"required,min=1"`
	DiscountCode string `json:"discountCode"`
}

// Review handles GET /checkout/review
func (h *CheckoutHandler) Review(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	summary, err := h.checkout.Review(c.Request.Context(), userID, c.Query("discountCode"))
	if err != nil {
		respondError(c, err, "Failed to review checkout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout summary",
		"data":    summary,
	})
}

// Discounts handles GET /checkout/discounts
func (h *CheckoutHandler) Discounts(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	discounts, err := h.checkout.AvailableDiscounts(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to load discounts")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": discounts,
	})
}

// PlaceOrder handles POST /checkout/orders
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	placement, err := h.checkout.PlaceOrder(c.Request.Context(), checkout.PlaceRequest{
		UserID:       userID,
		AddressID:    req.AddressID,
		DiscountCode: req.DiscountCode,
	})
	if err != nil {
		respondError(c, err, "Failed to place order")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"data":    placement,
	})
}
