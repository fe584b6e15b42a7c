// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/guestcart"
	"github.com/your-org/storefront/internal/domain/product"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
)

// CartHandler serves the guest cart to anonymous shoppers and the server
// cart to authenticated ones
type CartHandler struct {
	guests   *guestcart.Store
	carts    *cart.Service
	sessions *Sessions
	logger   logrus.FieldLogger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(guests *guestcart.Store, carts *cart.Service, sessions *Sessions, logger logrus.FieldLogger) *CartHandler {
	return &CartHandler{
		guests:   guests,
		carts:    carts,
		sessions: sessions,
		logger:   logger,
	}
}

// UpdateQuantityRequest sets a line's quantity; zero removes the line
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required,min=0"`
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	if userID, ok := middleware.GetUserIDFromContext(c); ok {
		view, err := h.carts.GetCart(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err, "Failed to retrieve cart")
			return
		}
		h.respondServerCart(c, view, "Cart retrieved successfully")
		return
	}

	items, err := h.guests.Get(c.Request.Context(), h.sessions.GetOrCreate(c))
	if err != nil {
		respondError(c, err, "Failed to retrieve cart")
		return
	}
	h.respondGuestCart(c, items, "Cart retrieved successfully")
}

// GetCartCount handles GET /cart/count
func (h *CartHandler) GetCartCount(c *gin.Context) {
	var (
		count int
		err   error
	)
	if userID, ok := middleware.GetUserIDFromContext(c); ok {
		count, err = h.carts.Count(c.Request.Context(), userID)
	} else if sessionID := h.sessions.Current(c); sessionID != "" {
		count, err = h.guests.Count(c.Request.Context(), sessionID)
	}
	if err != nil {
		respondError(c, err, "Failed to count cart items")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"count": count},
	})
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	var req guestcart.AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ctx := c.Request.Context()
	if userID, ok := middleware.GetUserIDFromContext(c); ok {
		if _, err := h.carts.AddToCart(ctx, userID, req.ProductSkuID, req.Quantity); err != nil {
			respondError(c, err, "Failed to add item to cart")
			return
		}
		view, err := h.carts.GetCart(ctx, userID)
		if err != nil {
			respondError(c, err, "Failed to retrieve cart")
			return
		}
		h.respondServerCart(c, view, "Item added to cart successfully")
		return
	}

	items, err := h.guests.AddOrIncrement(ctx, h.sessions.GetOrCreate(c), req)
	if err != nil {
		respondError(c, err, "Failed to add item to cart")
		return
	}
	h.respondGuestCart(c, items, "Item added to cart successfully")
}

// UpdateCartItem handles PUT /cart/items/:sku
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	sku, ok := skuParam(c)
	if !ok {
		return
	}

	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ctx := c.Request.Context()
	if userID, ok := middleware.GetUserIDFromContext(c); ok {
		if err := h.carts.UpdateQuantity(ctx, userID, sku, *req.Quantity); err != nil {
			respondError(c, err, "Failed to update cart item")
			return
		}
		view, err := h.carts.GetCart(ctx, userID)
		if err != nil {
			respondError(c, err, "Failed to retrieve cart")
			return
		}
		h.respondServerCart(c, view, "Cart item updated successfully")
		return
	}

	items, err := h.guests.UpdateQuantity(ctx, h.sessions.GetOrCreate(c), sku, *req.Quantity)
	if err != nil {
		respondError(c, err, "Failed to update cart item")
		return
	}
	h.respondGuestCart(c, items, "Cart item updated successfully")
}

// RemoveFromCart handles DELETE /cart/items/:sku
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	sku, ok := skuParam(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if userID, ok := middleware.GetUserIDFromContext(c); ok {
		if err := h.carts.DeleteItem(ctx, userID, sku); err != nil {
			respondError(c, err, "Failed to remove cart item")
			return
		}
		view, err := h.carts.GetCart(ctx, userID)
		if err != nil {
			respondError(c, err, "Failed to retrieve cart")
			return
		}
		h.respondServerCart(c, view, "Item removed from cart successfully")
		return
	}

	items, err := h.guests.Remove(ctx, h.sessions.GetOrCreate(c), sku)
	if err != nil {
		respondError(c, err, "Failed to remove cart item")
		return
	}
	h.respondGuestCart(c, items, "Item removed from cart successfully")
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	ctx := c.Request.Context()
	if userID, ok := middleware.GetUserIDFromContext(c); ok {
		if err := h.carts.ClearForUser(ctx, userID); err != nil {
			respondError(c, err, "Failed to clear cart")
			return
		}
	} else if sessionID := h.sessions.Current(c); sessionID != "" {
		if err := h.guests.Clear(ctx, sessionID); err != nil {
			respondError(c, err, "Failed to clear cart")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
	})
}

func (h *CartHandler) respondServerCart(c *gin.Context, view *cart.View, message string) {
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"data": gin.H{
			"guest": false,
			"cart":  view.Cart,
			"items": view.Items,
			"count": view.Count(),
		},
	})
}

func (h *CartHandler) respondGuestCart(c *gin.Context, items []guestcart.Item, message string) {
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"data": gin.H{
			"guest": true,
			"items": items,
			"count": guestcart.Count(items),
		},
	})
}

func skuParam(c *gin.Context) (product.SKU, bool) {
	sku, err := product.ParseSKU(c.Param("sku"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product SKU",
		})
		return "", false
	}
	return sku, true
}
