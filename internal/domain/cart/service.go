// internal/domain/cart/service.go
package cart

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/product"
	"golang.org/x/sync/singleflight"
)

// Service handles server cart business logic on top of the cart service
type Service struct {
	backend Backend
	cache   Cache
	images  ImageResolver
	group   singleflight.Group
	logger  logrus.FieldLogger
}

// NewService creates a new cart service. A nil cache disables caching.
func NewService(backend Backend, cache Cache, images ImageResolver, logger logrus.FieldLogger) *Service {
	if cache == nil {
		cache = NoopCache{}
	}
	return &Service{
		backend: backend,
		cache:   cache,
		images:  images,
		logger:  logger,
	}
}

// GetOrCreateCart returns the user's cart, creating it only when the cart
// service says none exists. Every other failure is returned unchanged.
func (s *Service) GetOrCreateCart(ctx context.Context, userID int64) (*Cart, error) {
	cart, err := s.backend.CartByUser(ctx, userID)
	switch {
	case err == nil && cart != nil && cart.CartID != 0:
		return cart, nil
	case err != nil && !errors.Is(err, ErrCartNotFound):
		return nil, fmt.Errorf("failed to load cart for user %d: %w", userID, err)
	}

	created, err := s.backend.CreateCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to create cart for user %d: %w", userID, err)
	}
	if created == nil || created.CartID == 0 {
		return nil, fmt.Errorf("cart service returned no cart id for user %d", userID)
	}

	s.logger.WithField("user_id", userID).WithField("cart_id", created.CartID).Info("created server cart")
	return created, nil
}

// FindItem looks a SKU up in a cart
func (s *Service) FindItem(ctx context.Context, cartID int64, sku product.SKU) ItemLookup {
	item, err := s.backend.ItemBySKU(ctx, cartID, sku)
	switch {
	case errors.Is(err, ErrItemNotFound):
		return ItemLookup{Status: LookupNotFound}
	case err != nil:
		return ItemLookup{Status: LookupFailed, Err: err}
	case item == nil || item.CartItemID == 0:
		return ItemLookup{Status: LookupNotFound}
	default:
		return ItemLookup{Status: LookupFound, Item: item}
	}
}

// UpsertItem adds quantity units of sku to the cart: an existing line is
// raised to existing+quantity, a missing one is created. A failed lookup is
// returned as an error and nothing is written.
func (s *Service) UpsertItem(ctx context.Context, cartID int64, sku product.SKU, quantity int) (*Item, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	lookup := s.FindItem(ctx, cartID, sku)
	switch lookup.Status {
	case LookupFound:
		newQuantity := lookup.Item.Quantity + quantity
		if err := s.backend.UpdateItem(ctx, lookup.Item.CartItemID, newQuantity); err != nil {
			return nil, fmt.Errorf("failed to update cart item %d: %w", lookup.Item.CartItemID, err)
		}
		updated := *lookup.Item
		updated.Quantity = newQuantity
		return &updated, nil

	case LookupNotFound:
		item, err := s.backend.AddItem(ctx, cartID, sku, quantity)
		if err != nil {
			return nil, fmt.Errorf("failed to add sku %s to cart %d: %w", sku, cartID, err)
		}
		return item, nil

	default:
		return nil, fmt.Errorf("failed to look up sku %s in cart %d: %w", sku, cartID, lookup.Err)
	}
}

// AddToCart is the add-to-cart entry point for an authenticated user
func (s *Service) AddToCart(ctx context.Context, userID int64, sku product.SKU, quantity int) (*Item, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	cart, err := s.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	item, err := s.UpsertItem(ctx, cart.CartID, sku, quantity)
	if err != nil {
		return nil, err
	}

	s.Invalidate(ctx, userID)
	return item, nil
}

// GetCart returns the user's cart view, served from the cache when possible.
// A user without a cart gets an empty view; reads never create carts.
func (s *Service) GetCart(ctx context.Context, userID int64) (*View, error) {
	view, err := s.cache.Get(ctx, userID)
	if err == nil {
		return view, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		s.logger.WithError(err).WithField("user_id", userID).Warn("cart cache read failed")
	}

	// the load is shared by every waiter, so it must outlive the caller that started it
	shared := context.WithoutCancel(ctx)
	result, err, _ := s.group.Do(strconv.FormatInt(userID, 10), func() (interface{}, error) {
		loaded, err := s.loadView(shared, userID)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(shared, userID, loaded); err != nil {
			s.logger.WithError(err).WithField("user_id", userID).Warn("cart cache write failed")
		}
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*View), nil
}

// Items returns the display lines of a cart
func (s *Service) Items(ctx context.Context, cartID int64) ([]DisplayItem, error) {
	items, err := s.backend.Items(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to load items of cart %d: %w", cartID, err)
	}
	return items, nil
}

// UpdateQuantity sets the quantity of the line holding sku; zero or less deletes it
func (s *Service) UpdateQuantity(ctx context.Context, userID int64, sku product.SKU, quantity int) error {
	if quantity <= 0 {
		return s.DeleteItem(ctx, userID, sku)
	}

	item, err := s.lineFor(ctx, userID, sku)
	if err != nil {
		return err
	}

	if err := s.backend.UpdateItem(ctx, item.CartItemID, quantity); err != nil {
		return fmt.Errorf("failed to update cart item %d: %w", item.CartItemID, err)
	}

	s.Invalidate(ctx, userID)
	return nil
}

// DeleteItem removes the line holding sku
func (s *Service) DeleteItem(ctx context.Context, userID int64, sku product.SKU) error {
	item, err := s.lineFor(ctx, userID, sku)
	if err != nil {
		return err
	}

	if err := s.backend.DeleteItem(ctx, item.CartItemID); err != nil {
		return fmt.Errorf("failed to delete cart item %d: %w", item.CartItemID, err)
	}

	s.Invalidate(ctx, userID)
	return nil
}

// ClearForUser deletes every line of the user's cart
func (s *Service) ClearForUser(ctx context.Context, userID int64) error {
	if err := s.backend.ClearUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear cart for user %d: %w", userID, err)
	}

	s.Invalidate(ctx, userID)
	return nil
}

// Count returns the number of units in the user's cart
func (s *Service) Count(ctx context.Context, userID int64) (int, error) {
	view, err := s.GetCart(ctx, userID)
	if err != nil {
		return 0, err
	}
	return view.Count(), nil
}

// Invalidate drops the user's cached view. Failures are only logged.
func (s *Service) Invalidate(ctx context.Context, userID int64) {
	if err := s.cache.Delete(ctx, userID); err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Warn("cart cache invalidation failed")
	}
}

func (s *Service) loadView(ctx context.Context, userID int64) (*View, error) {
	cart, err := s.backend.CartByUser(ctx, userID)
	if errors.Is(err, ErrCartNotFound) || (err == nil && (cart == nil || cart.CartID == 0)) {
		return &View{Items: []DisplayItem{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart for user %d: %w", userID, err)
	}

	items, err := s.Items(ctx, cart.CartID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []DisplayItem{}
	}

	if s.images != nil && len(items) > 0 {
		skus := make([]product.SKU, 0, len(items))
		for _, item := range items {
			skus = append(skus, item.ProductSkuID)
		}
		resolved := s.images.Resolve(ctx, skus, product.PickFirst)
		for i := range items {
			items[i].ProductImage = resolved.URL(items[i].ProductSkuID, items[i].ProductImage)
		}
	}

	return &View{Cart: cart, Items: items}, nil
}

func (s *Service) lineFor(ctx context.Context, userID int64, sku product.SKU) (*Item, error) {
	cart, err := s.backend.CartByUser(ctx, userID)
	if errors.Is(err, ErrCartNotFound) || (err == nil && (cart == nil || cart.CartID == 0)) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart for user %d: %w", userID, err)
	}

	lookup := s.FindItem(ctx, cart.CartID, sku)
	switch lookup.Status {
	case LookupFound:
		return lookup.Item, nil
	case LookupNotFound:
		return nil, ErrItemNotFound
	default:
		return nil, fmt.Errorf("failed to look up sku %s: %w", sku, lookup.Err)
	}
}
