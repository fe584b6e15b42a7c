// internal/interfaces/http/handlers/user_address.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/domain/user"
)

// UserAddressHandler serves the shopper's saved addresses
type UserAddressHandler struct {
	users *user.Service
}

// NewUserAddressHandler creates a new address handler
func NewUserAddressHandler(users *user.Service) *UserAddressHandler {
	return &UserAddressHandler{users: users}
}

// GetAddresses handles GET /users/addresses
func (h *UserAddressHandler) GetAddresses(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	addresses, err := h.users.Addresses(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve addresses")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"addresses": addresses,
			"primary":   user.Primary(addresses),
		},
	})
}
