// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/interfaces/http/handlers"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
	"github.com/your-org/storefront/internal/pkg/auth"
)

// Handlers groups every API handler
type Handlers struct {
	Auth      *handlers.AuthHandler
	Cart      *handlers.CartHandler
	Checkout  *handlers.CheckoutHandler
	Payment   *handlers.PaymentHandler
	Order     *handlers.OrderHandler
	Addresses *handlers.UserAddressHandler
}

// SetupAuthRoutes sets up authentication related routes
func SetupAuthRoutes(rg *gin.RouterGroup, h *handlers.AuthHandler, jwtManager *auth.JWTManager) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/login", h.Login)
		authGroup.POST("/signup", h.Signup)
		authGroup.POST("/refresh", h.RefreshToken)

		protected := authGroup.Group("")
		protected.Use(middleware.AuthMiddleware(jwtManager))
		{
			protected.POST("/logout", h.Logout)
		}
	}
}

// SetupCartRoutes sets up cart routes; guests and users share them
func SetupCartRoutes(rg *gin.RouterGroup, h *handlers.CartHandler, jwtManager *auth.JWTManager) {
	cart := rg.Group("/cart")
	cart.Use(middleware.OptionalAuthMiddleware(jwtManager))
	{
		cart.GET("", h.GetCart)
		cart.GET("/count", h.GetCartCount)
		cart.POST("/items", h.AddToCart)
		cart.PUT("/items/:sku", h.UpdateCartItem)
		cart.DELETE("/items/:sku", h.RemoveFromCart)
		cart.DELETE("", h.ClearCart)
	}
}

// SetupCheckoutRoutes sets up checkout routes
func SetupCheckoutRoutes(rg *gin.RouterGroup, h *handlers.CheckoutHandler, jwtManager *auth.JWTManager) {
	checkout := rg.Group("/checkout")
	checkout.Use(middleware.AuthMiddleware(jwtManager))
	{
		checkout.GET("/review", h.Review)
		checkout.GET("/discounts", h.Discounts)
		checkout.POST("/orders", h.PlaceOrder)
	}
}

// SetupPaymentRoutes sets up payment routes
func SetupPaymentRoutes(rg *gin.RouterGroup, h *handlers.PaymentHandler, jwtManager *auth.JWTManager) {
	payments := rg.Group("/payments")
	payments.Use(middleware.AuthMiddleware(jwtManager))
	{
		braintree := payments.Group("/braintree")
		{
			braintree.GET("/token", h.BraintreeToken)
			braintree.POST("/charge", h.BraintreeCharge)
		}

		razorpay := payments.Group("/razorpay")
		{
			razorpay.POST("/orders", h.RazorpayCreateOrder)
			razorpay.POST("/verify", h.RazorpayVerify)
		}
	}
}

// SetupOrderRoutes sets up order history and tracking routes
func SetupOrderRoutes(rg *gin.RouterGroup, h *handlers.OrderHandler, jwtManager *auth.JWTManager) {
	orders := rg.Group("/orders")
	orders.Use(middleware.AuthMiddleware(jwtManager))
	{
		orders.GET("", h.GetOrders)
		orders.GET("/:id/tracking", h.GetOrderTracking)
	}
}

// SetupUserRoutes sets up user related routes
func SetupUserRoutes(rg *gin.RouterGroup, h *handlers.UserAddressHandler, jwtManager *auth.JWTManager) {
	users := rg.Group("/users")
	users.Use(middleware.AuthMiddleware(jwtManager))
	{
		users.GET("/addresses", h.GetAddresses)
	}
}

// SetupRoutes registers every API route
func SetupRoutes(rg *gin.RouterGroup, h Handlers, jwtManager *auth.JWTManager) {
	SetupAuthRoutes(rg, h.Auth, jwtManager)
	SetupCartRoutes(rg, h.Cart, jwtManager)
	SetupCheckoutRoutes(rg, h.Checkout, jwtManager)
	SetupPaymentRoutes(rg, h.Payment, jwtManager)
	SetupOrderRoutes(rg, h.Order, jwtManager)
	SetupUserRoutes(rg, h.Addresses, jwtManager)
}
