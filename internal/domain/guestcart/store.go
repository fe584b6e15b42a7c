// internal/domain/guestcart/store.go
package guestcart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/product"
	"github.com/your-org/storefront/internal/pkg/money"
)

var (
	// ErrSessionRequired is returned when no guest session id is available
	ErrSessionRequired = errors.New("session ID required for guest cart")
	// ErrInvalidQuantity is returned when adding less than one unit
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// Store keeps guest carts in Redis, one JSON array per session.
// Writes are last-write-wins; concurrent tabs of one session may overwrite each other.
type Store struct {
	redisClient    *redis.Client
	ttl            time.Duration
	placeholderURL string
	currencySymbol string
	logger         logrus.FieldLogger
}

// Options configures a Store
type Options struct {
	TTL            time.Duration
	PlaceholderURL string
	CurrencySymbol string
}

// NewStore creates a new guest cart store
func NewStore(redisClient *redis.Client, opts Options, logger logrus.FieldLogger) *Store {
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	if opts.CurrencySymbol == "" {
		opts.CurrencySymbol = money.DefaultSymbol
	}
	return &Store{
		redisClient:    redisClient,
		ttl:            opts.TTL,
		placeholderURL: opts.PlaceholderURL,
		currencySymbol: opts.CurrencySymbol,
		logger:         logger,
	}
}

// Get returns the session's items. A missing or unreadable cart is empty.
func (s *Store) Get(ctx context.Context, sessionID string) ([]Item, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}

	data, err := s.redisClient.Get(ctx, cartKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return []Item{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read guest cart: %w", err)
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.WithError(err).WithField("session_id", sessionID).Warn("discarding unreadable guest cart")
		return []Item{}, nil
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}

// Set overwrites the session's cart and refreshes its expiry
func (s *Store) Set(ctx context.Context, sessionID string, items []Item) error {
	if sessionID == "" {
		return ErrSessionRequired
	}
	if items == nil {
		items = []Item{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode guest cart: %w", err)
	}

	if err := s.redisClient.Set(ctx, cartKey(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save guest cart: %w", err)
	}
	return nil
}

// AddOrIncrement adds req.Quantity units of a SKU, merging with an existing line
func (s *Store) AddOrIncrement(ctx context.Context, sessionID string, req AddRequest) ([]Item, error) {
	if req.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	if req.ProductSkuID.IsZero() {
		return nil, fmt.Errorf("productSkuId is required")
	}

	items, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if i := indexOf(items, req.ProductSkuID); i >= 0 {
		items[i].Quantity += req.Quantity
	} else {
		imageURL := req.ImageURL
		if imageURL == "" {
			imageURL = s.placeholderURL
		}
		items = append(items, Item{
			ProductSkuID:  req.ProductSkuID,
			ProductID:     req.ProductID,
			Title:         req.Title,
			ImageURL:      imageURL,
			UnitPriceText: money.NormalizePriceText(req.Price, s.currencySymbol),
			Quantity:      req.Quantity,
			Size:          req.Size,
			Color:         req.Color,
			OutOfStock:    req.OutOfStock,
		})
	}

	if err := s.Set(ctx, sessionID, items); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateQuantity sets a line's quantity; zero or less removes the line
func (s *Store) UpdateQuantity(ctx context.Context, sessionID string, sku product.SKU, quantity int) ([]Item, error) {
	if quantity <= 0 {
		return s.Remove(ctx, sessionID, sku)
	}

	items, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	i := indexOf(items, sku)
	if i < 0 {
		return items, nil
	}
	items[i].Quantity = quantity

	if err := s.Set(ctx, sessionID, items); err != nil {
		return nil, err
	}
	return items, nil
}

// Remove deletes a line by SKU
func (s *Store) Remove(ctx context.Context, sessionID string, sku product.SKU) ([]Item, error) {
	items, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	i := indexOf(items, sku)
	if i < 0 {
		return items, nil
	}
	items = append(items[:i], items[i+1:]...)

	if err := s.Set(ctx, sessionID, items); err != nil {
		return nil, err
	}
	return items, nil
}

// Clear deletes the session's cart
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrSessionRequired
	}
	if err := s.redisClient.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear guest cart: %w", err)
	}
	return nil
}

// Count returns the number of units in the session's cart
func (s *Store) Count(ctx context.Context, sessionID string) (int, error) {
	items, err := s.Get(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return Count(items), nil
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:session:%s", sessionID)
}
