// cmd/storefront/wire.go
package main

import (
	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/checkout"
	"github.com/your-org/storefront/internal/domain/guestcart"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/domain/payment"
	"github.com/your-org/storefront/internal/domain/product"
	"github.com/your-org/storefront/internal/domain/tracking"
	"github.com/your-org/storefront/internal/domain/user"
	"github.com/your-org/storefront/internal/infrastructure/backend"
	"github.com/your-org/storefront/internal/infrastructure/database/postgres"
	"github.com/your-org/storefront/internal/interfaces/http"
	"github.com/your-org/storefront/internal/interfaces/http/handlers"
	"github.com/your-org/storefront/internal/interfaces/http/routes"
	"github.com/your-org/storefront/internal/pkg/auth"
)

// buildDependencies wires backend clients, domain services and handlers.
// db may be nil when the incident log is disabled.
func buildDependencies(cfg *config.Config, redisClient *goredis.Client, db *postgres.DB, log *logrus.Logger) http.Dependencies {
	opts := backend.Options{
		Timeout: cfg.Services.Timeout,
		Breaker: backend.BreakerSettings{
			MaxRequests:         cfg.Breaker.MaxRequests,
			Interval:            cfg.Breaker.Interval,
			Timeout:             cfg.Breaker.Timeout,
			ConsecutiveFailures: cfg.Breaker.ConsecutiveFailures,
		},
	}
	client := func(name, baseURL string) *backend.Client {
		return backend.NewClient(name, baseURL, opts, log)
	}

	cartAPI := backend.NewCartAPI(client("cart", cfg.Services.CartURL))
	orderAPI := backend.NewOrderAPI(client("order", cfg.Services.OrderURL))
	userAPI := backend.NewUserAPI(client("users", cfg.Services.UserURL))
	paymentFunctions := backend.NewPaymentFunctionAPI(client("payment-function", cfg.Services.PaymentFunctionURL))
	paymentRecords := backend.NewPaymentRecordAPI(client("payment", cfg.Services.PaymentURL))

	var discountAPI checkout.DiscountAPI
	if cfg.Services.DiscountURL != "" && cfg.Services.DiscountFunctionURL != "" {
		discountAPI = backend.NewDiscountAPI(
			client("discount", cfg.Services.DiscountURL),
			client("discount-function", cfg.Services.DiscountFunctionURL),
		)
	}

	images := product.NewImageResolver(userAPI, cfg.Checkout.PlaceholderImageURL, cfg.Checkout.ImageLookupConcurrency, log)

	var cartCache cart.Cache = cart.NoopCache{}
	if cfg.Cache.Enabled {
		cartCache = cart.NewRedisCache(redisClient, cfg.Cache.CartTTL)
	}

	guests := guestcart.NewStore(redisClient, guestcart.Options{
		TTL:            cfg.Checkout.GuestCartTTL,
		PlaceholderURL: cfg.Checkout.PlaceholderImageURL,
		CurrencySymbol: cfg.Checkout.DefaultCurrencySymbol,
	}, log)
	carts := cart.NewService(cartAPI, cartCache, images, log)
	merger := cart.NewMerger(carts, guests, log)

	orders := order.NewService(orderAPI, log)
	checkoutService := checkout.NewService(carts, orders, discountAPI, checkout.Policy{
		CancelOnConfirmFailure: cfg.Checkout.CancelOrderOnConfirmFailure,
		CurrencySymbol:         cfg.Checkout.DefaultCurrencySymbol,
	}, log)

	var incidents payment.IncidentRecorder
	if db != nil {
		incidents = payment.NewIncidentRepository(db.GetDB())
	}
	orchestrator := payment.NewOrchestrator(paymentRecords, orders, carts, incidents, payment.Policy{
		ClearCartOnFailure: cfg.Checkout.ClearCartOnFailedPayment,
	}, log)

	users := user.NewService(userAPI, log)
	trackingService := tracking.NewService(orderAPI, images, log)

	jwtManager := auth.NewJWTManager(cfg)
	sessions := handlers.NewSessions(cfg.Checkout.GuestCartTTL, cfg.Security.SecureCookies)

	return http.Dependencies{
		Redis: redisClient,
		JWT:   jwtManager,
		Handlers: routes.Handlers{
			Auth:     handlers.NewAuthHandler(users, merger, jwtManager, sessions, log),
			Cart:     handlers.NewCartHandler(guests, carts, sessions, log),
			Checkout: handlers.NewCheckoutHandler(checkoutService, log),
			Payment: handlers.NewPaymentHandler(
				payment.NewBraintreeGateway(paymentFunctions, log),
				payment.NewRazorpayGateway(paymentFunctions, log),
				orders,
				orchestrator,
				log,
			),
			Order:     handlers.NewOrderHandler(orders, trackingService, log),
			Addresses: handlers.NewUserAddressHandler(users),
		},
	}
}
