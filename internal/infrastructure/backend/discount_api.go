// internal/infrastructure/backend/discount_api.go
package backend

import (
	"context"
	"net/http"

	"github.com/your-org/storefront/internal/domain/checkout"
)

// DiscountAPI is the discount service plus the discount function that prices codes
type DiscountAPI struct {
	discounts  *Client
	calculator *Client
}

// NewDiscountAPI creates a discount adapter
func NewDiscountAPI(discounts, calculator *Client) *DiscountAPI {
	return &DiscountAPI{discounts: discounts, calculator: calculator}
}

// DiscountData lists discounts offered on the given SKUs
func (a *DiscountAPI) DiscountData(ctx context.Context, query checkout.DiscountQuery) ([]checkout.Discount, error) {
	data, err := a.discounts.send(ctx, http.MethodPost, "discounts/discountData", query)
	if err != nil {
		return nil, err
	}
	return decodeList[checkout.Discount](data)
}

// CalculateDiscount prices a discount code against a total
func (a *DiscountAPI) CalculateDiscount(ctx context.Context, req checkout.CalculateRequest) (*checkout.Calculation, error) {
	var calculation checkout.Calculation
	if err := a.calculator.Do(ctx, http.MethodPost, "calculate-discount", req, &calculation); err != nil {
		return nil, err
	}
	return &calculation, nil
}
