// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/pkg/money"
)

// Policy holds the configurable parts of checkout
type Policy struct {
	// CancelOnConfirmFailure marks an order Cancelled when its items could not be written
	CancelOnConfirmFailure bool
	CurrencySymbol         string
}

// Service handles checkout business logic
type Service struct {
	carts     Carts
	orders    Orders
	discounts DiscountAPI
	policy    Policy
	logger    logrus.FieldLogger
	now       func() time.Time
}

// NewService creates a new checkout service. discounts may be nil.
func NewService(carts Carts, orders Orders, discounts DiscountAPI, policy Policy, logger logrus.FieldLogger) *Service {
	if policy.CurrencySymbol == "" {
		policy.CurrencySymbol = money.DefaultSymbol
	}
	return &Service{
		carts:     carts,
		orders:    orders,
		discounts: discounts,
		policy:    policy,
		logger:    logger,
		now:       time.Now,
	}
}

// Review prices the user's cart and applies discountCode when given
func (s *Service) Review(ctx context.Context, userID int64, discountCode string) (*Summary, error) {
	view, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	if view == nil || len(view.Items) == 0 {
		return nil, ErrEmptyCart
	}

	summary := &Summary{Lines: make([]SummaryLine, 0, len(view.Items))}
	subtotal := decimal.Zero
	for _, item := range view.Items {
		unit, err := money.ParsePriceText(item.ProductPrice)
		if err != nil {
			return nil, fmt.Errorf("sku %s: %w", item.ProductSkuID, err)
		}
		lineTotal := money.LineTotal(unit, item.Quantity)
		subtotal = subtotal.Add(lineTotal)

		summary.Lines = append(summary.Lines, SummaryLine{
			ProductSkuID:   item.ProductSkuID,
			ProductID:      item.ProductID,
			Name:           item.ProductTitle,
			Size:           item.ProductSize,
			Color:          item.ProductColor,
			Quantity:       item.Quantity,
			Price:          priceOf(unit),
			TotalItemPrice: priceOf(lineTotal),
			Image:          item.ProductImage,
		})
	}

	discountAmount := decimal.Zero
	total := subtotal
	if code := strings.TrimSpace(discountCode); code != "" {
		applied, calculation, err := s.applyDiscount(ctx, summary, subtotal, code)
		if err != nil {
			return nil, err
		}
		discountAmount = calculation.DiscountAmount.Decimal
		total = subtotal.Sub(discountAmount)
		if calculation.FinalPrice.IsPositive() {
			total = calculation.FinalPrice.Decimal
		}
		if total.IsNegative() {
			total = decimal.Zero
		}
		summary.AppliedDiscount = applied
	}

	summary.Subtotal = priceOf(subtotal)
	summary.Discount = priceOf(discountAmount)
	summary.Total = priceOf(total)
	summary.Display = DisplayTotals{
		Subtotal: money.Format(subtotal, s.policy.CurrencySymbol),
		Discount: money.Format(discountAmount, s.policy.CurrencySymbol),
		Total:    money.Format(total, s.policy.CurrencySymbol),
	}
	return summary, nil
}

// AvailableDiscounts returns the active discounts offered on the cart's SKUs,
// one per code
func (s *Service) AvailableDiscounts(ctx context.Context, userID int64) ([]Discount, error) {
	summary, err := s.Review(ctx, userID, "")
	if err != nil {
		return nil, err
	}
	return s.discountsFor(ctx, summary)
}

// PlaceOrder creates the order from the reviewed cart and confirms its
// items. When confirmation fails the order may be cancelled, per policy.
func (s *Service) PlaceOrder(ctx context.Context, req PlaceRequest) (*Placement, error) {
	if req.AddressID <= 0 {
		return nil, order.ErrMissingAddress
	}

	summary, err := s.Review(ctx, req.UserID, req.DiscountCode)
	if err != nil {
		return nil, err
	}

	// Reject non-numeric SKUs before the order exists
	lines := summary.OrderLines()
	if _, err := order.BuildItemPayload(1, lines); err != nil {
		return nil, err
	}

	orderID, err := s.orders.CreateOrder(ctx, order.CreateRequest{
		UserID:      req.UserID,
		AddressID:   req.AddressID,
		TotalAmount: summary.Total.Decimal,
	})
	if err != nil {
		return nil, err
	}

	log := s.logger.WithFields(logrus.Fields{
		"order_id": orderID,
		"user_id":  req.UserID,
	})

	if err := s.orders.ConfirmItems(ctx, orderID, lines); err != nil {
		log.WithError(err).Error("order item confirmation failed")
		s.compensate(ctx, log, req, orderID, summary.Total.Decimal)
		return nil, fmt.Errorf("%w: %v", ErrConfirmFailed, err)
	}

	s.carts.Invalidate(ctx, req.UserID)

	return &Placement{
		OrderID:   orderID,
		AddressID: req.AddressID,
		Total:     summary.Total,
		Redirect:  PaymentPath,
	}, nil
}

func (s *Service) compensate(ctx context.Context, log logrus.FieldLogger, req PlaceRequest, orderID int64, total decimal.Decimal) {
	if !s.policy.CancelOnConfirmFailure {
		log.Warn("order left in Payment Pending without items")
		return
	}

	err := s.orders.Cancel(ctx, order.UpdateRequest{
		OrderID:     orderID,
		TotalAmount: total,
		UserID:      req.UserID,
		AddressID:   req.AddressID,
	})
	if err != nil {
		log.WithError(err).Error("failed to cancel order after confirmation failure")
	}
}

func (s *Service) applyDiscount(ctx context.Context, summary *Summary, subtotal decimal.Decimal, code string) (*Discount, *Calculation, error) {
	offered, err := s.discountsFor(ctx, summary)
	if err != nil {
		return nil, nil, err
	}

	var applied *Discount
	for i := range offered {
		if strings.EqualFold(offered[i].Code, code) {
			applied = &offered[i]
			break
		}
	}
	if applied == nil {
		return nil, nil, ErrUnknownDiscount
	}

	calculation, err := s.discounts.CalculateDiscount(ctx, CalculateRequest{
		ProductSkuID: summary.SKUs(),
		TotalPrice:   subtotal.InexactFloat64(),
		DiscountCode: applied.Code,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to calculate discount: %w", err)
	}
	if calculation == nil {
		return nil, nil, errors.New("failed to calculate discount: empty response")
	}
	return applied, calculation, nil
}

func (s *Service) discountsFor(ctx context.Context, summary *Summary) ([]Discount, error) {
	if s.discounts == nil {
		return []Discount{}, nil
	}

	all, err := s.discounts.DiscountData(ctx, DiscountQuery{ProductSkuID: summary.SKUs()})
	if err != nil {
		return nil, fmt.Errorf("failed to load discounts: %w", err)
	}

	now := s.now()
	seen := make(map[string]bool, len(all))
	result := make([]Discount, 0, len(all))
	for _, discount := range all {
		if discount.Code == "" || seen[discount.Code] {
			continue
		}
		if discount.IsActive != nil && !*discount.IsActive {
			continue
		}
		if expired(discount.ValidTo, now) {
			continue
		}
		seen[discount.Code] = true
		result = append(result, discount)
	}
	return result, nil
}

// expired reports whether validTo lies in the past; a missing or unreadable date never expires
func expired(validTo string, now time.Time) bool {
	if validTo == "" {
		return false
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, validTo); err == nil {
			return !t.After(now)
		}
	}
	return false
}
