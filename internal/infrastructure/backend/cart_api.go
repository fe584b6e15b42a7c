// internal/infrastructure/backend/cart_api.go
package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/product"
)

// CartAPI is the cart service
type CartAPI struct {
	client *Client
}

// NewCartAPI creates a cart service adapter
func NewCartAPI(client *Client) *CartAPI {
	return &CartAPI{client: client}
}

type addItemBody struct {
	CartID       int64       `json:"cartId"`
	ProductSkuID product.SKU `json:"productSkuId"`
	Quantity     int         `json:"quantity"`
}

type quantityBody struct {
	Quantity int `json:"quantity"`
}

// CartByUser returns the user's cart. A 404 or an empty answer is ErrCartNotFound.
func (a *CartAPI) CartByUser(ctx context.Context, userID int64) (*cart.Cart, error) {
	var c cart.Cart
	err := a.client.Do(ctx, http.MethodGet, fmt.Sprintf("/carts/user/%d", userID), nil, &c)
	if errors.Is(err, ErrNotFound) {
		return nil, cart.ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}
	if c.CartID == 0 {
		return nil, cart.ErrCartNotFound
	}
	return &c, nil
}

// CreateCart creates an empty cart for the user
func (a *CartAPI) CreateCart(ctx context.Context, userID int64) (*cart.Cart, error) {
	var c cart.Cart
	if err := a.client.Do(ctx, http.MethodPost, "/carts", map[string]int64{"userId": userID}, &c); err != nil {
		return nil, err
	}
	if c.CartID == 0 {
		return nil, fmt.Errorf("cart service returned no cartId for user %d", userID)
	}
	if c.UserID == 0 {
		c.UserID = userID
	}
	return &c, nil
}

// Items returns the display lines of a cart
func (a *CartAPI) Items(ctx context.Context, cartID int64) ([]cart.DisplayItem, error) {
	data, err := a.client.getList(ctx, fmt.Sprintf("/cart_items/display/by-cart/%d", cartID))
	if err != nil {
		return nil, err
	}
	return decodeList[cart.DisplayItem](data)
}

// ItemBySKU returns the cart line for a SKU. A 404 or an empty answer is ErrItemNotFound.
func (a *CartAPI) ItemBySKU(ctx context.Context, cartID int64, sku product.SKU) (*cart.Item, error) {
	var item cart.Item
	path := fmt.Sprintf("/cart_items/%d/sku/%s", cartID, url.PathEscape(sku.String()))
	err := a.client.Do(ctx, http.MethodGet, path, nil, &item)
	if errors.Is(err, ErrNotFound) {
		return nil, cart.ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	if item.CartItemID == 0 {
		return nil, cart.ErrItemNotFound
	}
	return &item, nil
}

// AddItem inserts a new cart line
func (a *CartAPI) AddItem(ctx context.Context, cartID int64, sku product.SKU, quantity int) (*cart.Item, error) {
	item := cart.Item{CartID: cartID, ProductSkuID: sku, Quantity: quantity}
	body := addItemBody{CartID: cartID, ProductSkuID: sku, Quantity: quantity}
	if err := a.client.Do(ctx, http.MethodPost, "/cart_items", body, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItem sets the quantity of a cart line
func (a *CartAPI) UpdateItem(ctx context.Context, cartItemID int64, quantity int) error {
	return a.client.Do(ctx, http.MethodPut, fmt.Sprintf("/cart_items/%d", cartItemID), quantityBody{Quantity: quantity}, nil)
}

// DeleteItem removes a cart line
func (a *CartAPI) DeleteItem(ctx context.Context, cartItemID int64) error {
	err := a.client.Do(ctx, http.MethodDelete, fmt.Sprintf("/cart_items/%d", cartItemID), nil, nil)
	if errors.Is(err, ErrNotFound) {
		return cart.ErrItemNotFound
	}
	return err
}

// ClearUser removes every line of the user's cart. Nothing to clear is not an error.
func (a *CartAPI) ClearUser(ctx context.Context, userID int64) error {
	err := a.client.Do(ctx, http.MethodDelete, fmt.Sprintf("/cart_items/clear/user/%d", userID), nil, nil)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}
