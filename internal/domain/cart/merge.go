// internal/domain/cart/merge.go
package cart

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/guestcart"
	"github.com/your-org/storefront/internal/domain/product"
)

// GuestCarts is the part of the guest store the merge needs
type GuestCarts interface {
	Get(ctx context.Context, sessionID string) ([]guestcart.Item, error)
	Clear(ctx context.Context, sessionID string) error
}

// ItemFailure records a guest line that could not be merged
type ItemFailure struct {
	SKU    product.SKU `json:"sku"`
	Reason string      `json:"reason"`
}

// MergeReport summarizes one merge run
type MergeReport struct {
	CartID int64         `json:"cartId,omitempty"`
	Merged []product.SKU `json:"merged"`
	Failed []ItemFailure `json:"failed"`
}

// Merger folds a guest session's cart into the user's server cart after login
type Merger struct {
	carts  *Service
	guests GuestCarts
	logger logrus.FieldLogger
}

// NewMerger creates a new cart merger
func NewMerger(carts *Service, guests GuestCarts, logger logrus.FieldLogger) *Merger {
	return &Merger{
		carts:  carts,
		guests: guests,
		logger: logger,
	}
}

// Merge moves every guest line into the server cart. Lines that fail are
// logged and reported while the rest continue. The guest cart is cleared
// once the server cart is known, even when some lines failed; if the
// server cart cannot be resolved the guest cart is kept and an error returned.
func (m *Merger) Merge(ctx context.Context, userID int64, sessionID string) (*MergeReport, error) {
	report := &MergeReport{
		Merged: []product.SKU{},
		Failed: []ItemFailure{},
	}
	if sessionID == "" {
		return report, nil
	}

	guestItems, err := m.guests.Get(ctx, sessionID)
	if err != nil {
		return report, fmt.Errorf("failed to read guest cart: %w", err)
	}
	if len(guestItems) == 0 {
		return report, nil
	}

	log := m.logger.WithField("user_id", userID)

	cart, err := m.carts.GetOrCreateCart(ctx, userID)
	if err != nil {
		log.WithError(err).Error("guest cart merge aborted, keeping guest cart")
		return report, err
	}
	report.CartID = cart.CartID

	for _, guestItem := range guestItems {
		if guestItem.Quantity < 1 {
			report.Failed = append(report.Failed, ItemFailure{SKU: guestItem.ProductSkuID, Reason: ErrInvalidQuantity.Error()})
			continue
		}

		if _, err := m.carts.UpsertItem(ctx, cart.CartID, guestItem.ProductSkuID, guestItem.Quantity); err != nil {
			log.WithError(err).WithField("sku", guestItem.ProductSkuID).Warn("failed to merge guest cart item")
			report.Failed = append(report.Failed, ItemFailure{SKU: guestItem.ProductSkuID, Reason: err.Error()})
			continue
		}
		report.Merged = append(report.Merged, guestItem.ProductSkuID)
	}

	if err := m.guests.Clear(ctx, sessionID); err != nil {
		log.WithError(err).Warn("failed to clear guest cart after merge")
	}
	m.carts.Invalidate(ctx, userID)

	log.WithFields(logrus.Fields{
		"cart_id": cart.CartID,
		"merged":  len(report.Merged),
		"failed":  len(report.Failed),
	}).Info("guest cart merged")

	return report, nil
}
