// internal/domain/order/service.go
package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Service handles order creation, item confirmation and status updates
type Service struct {
	backend Backend
	logger  logrus.FieldLogger
	now     func() time.Time
}

// NewService creates a new order service
func NewService(backend Backend, logger logrus.FieldLogger) *Service {
	return &Service{
		backend: backend,
		logger:  logger,
		now:     time.Now,
	}
}

// CreateOrder creates a Payment Pending order and returns its id.
// Preconditions are checked before any call to the order service.
func (s *Service) CreateOrder(ctx context.Context, req CreateRequest) (int64, error) {
	if req.UserID <= 0 {
		return 0, ErrMissingUser
	}
	if req.AddressID <= 0 {
		return 0, ErrMissingAddress
	}
	if !req.TotalAmount.IsPositive() {
		return 0, ErrInvalidTotal
	}

	created, err := s.backend.CreateOrder(ctx, OrderPayload{
		OrderDate:   s.timestamp(),
		Status:      StatusPaymentPending,
		TotalAmount: req.TotalAmount.Round(2).InexactFloat64(),
		UserID:      req.UserID,
		AddressID:   req.AddressID,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create order: %w", err)
	}
	if created == nil || created.OrderID == 0 {
		return 0, ErrNoOrderID
	}

	s.logger.WithFields(logrus.Fields{
		"order_id": created.OrderID,
		"user_id":  req.UserID,
	}).Info("order created")

	return created.OrderID, nil
}

// ConfirmItems writes all lines of an order as a single batch. The payload is
// built from a copy so later changes to the caller's lines or the live cart
// never reach the stored items.
func (s *Service) ConfirmItems(ctx context.Context, orderID int64, lines []Line) error {
	if orderID <= 0 {
		return ErrNoOrderID
	}
	payload, err := BuildItemPayload(orderID, lines)
	if err != nil {
		return err
	}

	if err := s.backend.CreateItems(ctx, payload); err != nil {
		return fmt.Errorf("failed to confirm items of order %d: %w", orderID, err)
	}

	s.logger.WithFields(logrus.Fields{
		"order_id": orderID,
		"lines":    len(payload),
	}).Info("order items confirmed")

	return nil
}

// UpdateStatus sets an order's status, restating its other fields
func (s *Service) UpdateStatus(ctx context.Context, req UpdateRequest) error {
	if req.OrderID <= 0 {
		return ErrNoOrderID
	}

	err := s.backend.UpdateOrder(ctx, req.OrderID, OrderPayload{
		OrderDate:   s.timestamp(),
		Status:      req.Status,
		TotalAmount: req.TotalAmount.Round(2).InexactFloat64(),
		UserID:      req.UserID,
		AddressID:   req.AddressID,
	})
	if err != nil {
		return fmt.Errorf("failed to set order %d to %q: %w", req.OrderID, req.Status, err)
	}
	return nil
}

// Cancel marks an order Cancelled. It is used to compensate for an order
// whose items could not be confirmed.
func (s *Service) Cancel(ctx context.Context, req UpdateRequest) error {
	req.Status = StatusCancelled
	if err := s.UpdateStatus(ctx, req); err != nil {
		return err
	}

	s.logger.WithField("order_id", req.OrderID).Warn("order cancelled")
	return nil
}

// Payable returns the user's order when it can still take a payment. An
// order owned by someone else is reported as not found.
func (s *Service) Payable(ctx context.Context, userID, orderID int64) (*Order, error) {
	if orderID <= 0 {
		return nil, ErrOrderNotFound
	}

	stored, err := s.backend.OrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to load order %d: %w", orderID, err)
	}
	if stored == nil || stored.OrderID != orderID || stored.UserID != userID {
		s.logger.WithFields(logrus.Fields{
			"order_id": orderID,
			"user_id":  userID,
		}).Warn("payment attempted on an order the user does not own")
		return nil, ErrOrderNotFound
	}

	switch stored.Status {
	case StatusPaymentSuccessful, StatusCancelled:
		return nil, fmt.Errorf("%w: order %d is %s", ErrOrderNotPayable, orderID, stored.Status)
	}
	return stored, nil
}

// ListByUser returns one page of a user's orders
func (s *Service) ListByUser(ctx context.Context, req ListRequest) ([]Order, error) {
	if req.PageNumber < 1 {
		req.PageNumber = 1
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = 30
	}

	orders, err := s.backend.OrdersByUser(ctx, req.UserID, req.PageNumber, req.PageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders for user %d: %w", req.UserID, err)
	}
	if orders == nil {
		orders = []Order{}
	}
	return orders, nil
}

// BuildItemPayload converts lines into the order items batch. Each price is
// the line total and each SKU is sent in integer form.
func BuildItemPayload(orderID int64, lines []Line) ([]ItemPayload, error) {
	if len(lines) == 0 {
		return nil, ErrNoItems
	}

	snapshot := make([]Line, len(lines))
	copy(snapshot, lines)

	payload := make([]ItemPayload, 0, len(snapshot))
	for _, line := range snapshot {
		if line.Quantity < 1 {
			return nil, fmt.Errorf("%w: sku %s", ErrInvalidQuantity, line.SKU)
		}
		sku, err := line.SKU.Int64()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSKU, err)
		}
		payload = append(payload, ItemPayload{
			Quantity:     line.Quantity,
			Price:        line.Total().InexactFloat64(),
			OrderID:      orderID,
			ProductSkuID: sku,
		})
	}
	return payload, nil
}

// isoTimestamp matches the millisecond UTC timestamps the order service stores
const isoTimestamp = "2006-01-02T15:04:05.000Z07:00"

func (s *Service) timestamp() string {
	return s.now().UTC().Format(isoTimestamp)
}
