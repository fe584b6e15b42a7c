// internal/infrastructure/backend/user_api.go
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/your-org/storefront/internal/domain/product"
	"github.com/your-org/storefront/internal/domain/user"
)

// maxImagesPerSKU caps the gallery size returned by the blob endpoint
const maxImagesPerSKU = 9

// UserAPI is the users service, which also signs blob image URLs
type UserAPI struct {
	client *Client
}

// NewUserAPI creates a users service adapter
func NewUserAPI(client *Client) *UserAPI {
	return &UserAPI{client: client}
}

// Login checks credentials. A rejection with a body is returned as the reply.
func (a *UserAPI) Login(ctx context.Context, payload user.LoginPayload) (*user.AuthReply, error) {
	return a.authenticate(ctx, "/users/login", payload)
}

// CreateUser registers an account. A rejection with a body is returned as the reply.
func (a *UserAPI) CreateUser(ctx context.Context, payload user.SignupPayload) (*user.AuthReply, error) {
	return a.authenticate(ctx, "/users", payload)
}

func (a *UserAPI) authenticate(ctx context.Context, path string, payload interface{}) (*user.AuthReply, error) {
	var reply user.AuthReply
	err := a.client.Do(ctx, http.MethodPost, path, payload, &reply)
	if err != nil {
		body, ok := rejectedBody(err)
		if !ok {
			return nil, err
		}
		reply = user.AuthReply{}
		if json.Unmarshal(body, &reply) != nil {
			reply.Message = string(body)
		}
		reply.UserID = 0
	}
	return &reply, nil
}

// Addresses returns the user's addresses
func (a *UserAPI) Addresses(ctx context.Context, userID int64) ([]user.Address, error) {
	data, err := a.client.getList(ctx, fmt.Sprintf("/addresses/%d", userID))
	if err != nil {
		return nil, err
	}
	return decodeList[user.Address](data)
}

// ImagesBySKU returns signed image URLs for a SKU
func (a *UserAPI) ImagesBySKU(ctx context.Context, sku product.SKU) ([]product.Image, error) {
	data, err := a.client.getList(ctx, fmt.Sprintf("/blob/GenerateSasToken/%s/1", url.PathEscape(sku.String())))
	if err != nil {
		return nil, err
	}

	var images []product.Image
	if len(data) > 0 {
		if err := json.Unmarshal(data, &images); err != nil {
			// a non-array answer means no gallery
			return []product.Image{}, nil
		}
	}
	if len(images) > maxImagesPerSKU {
		images = images[:maxImagesPerSKU]
	}
	return images, nil
}
