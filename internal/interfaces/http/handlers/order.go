// internal/interfaces/http/handlers/order.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/domain/tracking"
)

// OrderHandler serves order history and tracking
type OrderHandler struct {
	orders   *order.Service
	tracking *tracking.Service
	logger   logrus.FieldLogger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orders *order.Service, trackingService *tracking.Service, logger logrus.FieldLogger) *OrderHandler {
	return &OrderHandler{
		orders:   orders,
		tracking: trackingService,
		logger:   logger,
	}
}

// GetOrders handles GET /orders
func (h *OrderHandler) GetOrders(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	pageNumber, _ := strconv.Atoi(c.DefaultQuery("pageNumber", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "30"))

	orders, err := h.orders.ListByUser(c.Request.Context(), order.ListRequest{
		UserID:     userID,
		PageNumber: pageNumber,
		PageSize:   pageSize,
	})
	if err != nil {
		respondError(c, err, "Failed to retrieve orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": orders,
	})
}

// GetOrderTracking handles GET /orders/:id/tracking
func (h *OrderHandler) GetOrderTracking(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || orderID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return
	}

	view, err := h.tracking.Track(c.Request.Context(), userID, orderID)
	if err != nil {
		respondError(c, err, "Failed to retrieve order tracking")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": view,
	})
}
