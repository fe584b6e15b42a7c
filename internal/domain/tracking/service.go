// internal/domain/tracking/service.go
package tracking

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/domain/product"
	"github.com/your-org/storefront/internal/pkg/money"
	"golang.org/x/sync/errgroup"
)

// ErrNoTracking is returned when the order service has no tracking row
var ErrNoTracking = errors.New("no tracking info found")

// Shipping is the delivery block of an order's tracking row
type Shipping struct {
	Name         string      `json:"name"`
	AddressLine1 string      `json:"addressLine1"`
	AddressLine2 string      `json:"addressLine2"`
	City         string      `json:"city"`
	State        string      `json:"state"`
	Zip          string      `json:"zip"`
	Country      string      `json:"country"`
	TotalAmount  money.Price `json:"totalAmount"`
}

// Backend is the order service's read side
type Backend interface {
	StatusHistory(ctx context.Context, orderID int64) ([]HistoryEntry, error)
	Tracking(ctx context.Context, userID, orderID int64) ([]Shipping, error)
	OrderItems(ctx context.Context, orderID int64) ([]order.ItemDetail, error)
}

// ImageResolver looks up primary images for order lines
type ImageResolver interface {
	Resolve(ctx context.Context, skus []product.SKU, pick product.ImagePick) product.ResolvedImages
}

// View is the order tracking page
type View struct {
	OrderID       int64              `json:"orderId"`
	Timeline      []Milestone        `json:"timeline"`
	PlacedAt      string             `json:"placedAt,omitempty"`
	LastUpdatedAt string             `json:"lastUpdatedAt,omitempty"`
	Shipping      *Shipping          `json:"shipping"`
	TotalAmount   money.Price        `json:"totalAmount"`
	Items         []order.ItemDetail `json:"items"`
}

// Service builds order tracking views
type Service struct {
	backend Backend
	images  ImageResolver
	logger  logrus.FieldLogger
}

// NewService creates a new tracking service
func NewService(backend Backend, images ImageResolver, logger logrus.FieldLogger) *Service {
	return &Service{
		backend: backend,
		images:  images,
		logger:  logger,
	}
}

// Track reads history, tracking and items concurrently and projects them
func (s *Service) Track(ctx context.Context, userID, orderID int64) (*View, error) {
	var (
		history  []HistoryEntry
		shipping []Shipping
		items    []order.ItemDetail
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		history, err = s.backend.StatusHistory(gctx, orderID)
		if err != nil {
			return fmt.Errorf("failed to fetch status history: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		shipping, err = s.backend.Tracking(gctx, userID, orderID)
		if err != nil {
			return fmt.Errorf("failed to fetch tracking: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		items, err = s.backend.OrderItems(gctx, orderID)
		if err != nil {
			return fmt.Errorf("failed to fetch order items: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.WithError(err).WithField("order_id", orderID).Error("failed to fetch order tracking details")
		return nil, err
	}

	if len(shipping) == 0 {
		return nil, ErrNoTracking
	}
	if items == nil {
		items = []order.ItemDetail{}
	}

	if s.images != nil && len(items) > 0 {
		skus := make([]product.SKU, 0, len(items))
		for _, item := range items {
			skus = append(skus, item.ProductSkuID)
		}
		resolved := s.images.Resolve(ctx, skus, product.PickPrimary)
		for i := range items {
			items[i].ImageURL = resolved.URL(items[i].ProductSkuID, items[i].ImageURL)
		}
	}

	timeline := BuildTimeline(history)
	details := shipping[0]

	return &View{
		OrderID:       orderID,
		Timeline:      timeline,
		PlacedAt:      PlacedAt(timeline),
		LastUpdatedAt: LastUpdatedAt(timeline),
		Shipping:      &details,
		TotalAmount:   details.TotalAmount,
		Items:         items,
	}, nil
}
