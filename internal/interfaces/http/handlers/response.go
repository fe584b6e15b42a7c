// internal/interfaces/http/handlers/response.go
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sony/gobreaker/v2"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/checkout"
	"github.com/your-org/storefront/internal/domain/guestcart"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/domain/payment"
	"github.com/your-org/storefront/internal/domain/tracking"
	"github.com/your-org/storefront/internal/domain/user"
	"github.com/your-org/storefront/internal/infrastructure/backend"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
)

var badRequestErrors = []error{
	order.ErrMissingAddress,
	order.ErrMissingUser,
	order.ErrInvalidTotal,
	order.ErrInvalidSKU,
	order.ErrNoItems,
	order.ErrInvalidQuantity,
	cart.ErrInvalidQuantity,
	guestcart.ErrInvalidQuantity,
	guestcart.ErrSessionRequired,
	checkout.ErrEmptyCart,
	checkout.ErrUnknownDiscount,
	payment.ErrInvalidAmount,
	user.ErrPasswordMismatch,
}

var notFoundErrors = []error{
	cart.ErrItemNotFound,
	cart.ErrCartNotFound,
	tracking.ErrNoTracking,
	order.ErrOrderNotFound,
	backend.ErrNotFound,
}

// statusFor maps domain and backend errors to HTTP status codes
func statusFor(err error) int {
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return http.StatusNotFound
		}
	}

	var validation *user.ValidationError
	var statusErr *backend.StatusError
	switch {
	case errors.Is(err, user.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.As(err, &validation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, user.ErrSignupRejected),
		errors.Is(err, order.ErrOrderNotPayable),
		errors.Is(err, order.ErrOrderMismatch):
		return http.StatusConflict
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, checkout.ErrConfirmFailed), errors.As(err, &statusErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err with the status it maps to. Server errors hide details.
func respondError(c *gin.Context, err error, message string) {
	status := statusFor(err)
	_ = c.Error(err)

	body := gin.H{"error": message}
	if status < http.StatusInternalServerError || status == http.StatusBadGateway {
		body["details"] = err.Error()
	}
	var validation *user.ValidationError
	if errors.As(err, &validation) {
		body["errors"] = validation.Fields
	}
	c.JSON(status, body)
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Invalid request data",
		"details": err.Error(),
	})
}

// currentUser returns the authenticated user id or answers 401
func currentUser(c *gin.Context) (int64, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return 0, false
	}
	return userID, true
}
