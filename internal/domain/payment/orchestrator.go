// internal/domain/payment/orchestrator.go
package payment

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/order"
)

// State is a stage of the post-payment workflow
type State string

const (
	StateIdle                  State = "idle"
	StateAwaitingGatewayResult State = "awaiting_gateway_result"
	StateGatewayResolved       State = "gateway_resolved"
	StatePaymentRecorded       State = "payment_recorded"
	StateOrderUpdated          State = "order_updated"
	StateCartCleared           State = "cart_cleared"
	StateNavigatedToTracking   State = "navigated_to_tracking"
)

// Step names a bookkeeping step that may fail on its own
type Step string

const (
	StepRecordPayment Step = "record_payment"
	StepUpdateOrder   Step = "update_order"
	StepClearCart     Step = "clear_cart"
)

// Attempt identifies the order a gateway result belongs to
type Attempt struct {
	OrderID   int64
	UserID    int64
	AddressID int64
	Amount    decimal.Decimal
}

// Warning reports one failed bookkeeping step
type Warning struct {
	Step    Step   `json:"step"`
	Message string `json:"message"`
}

// Outcome is what the shopper is told after a payment attempt
type Outcome struct {
	OrderID       int64     `json:"orderId"`
	Succeeded     bool      `json:"succeeded"`
	PaymentStatus string    `json:"paymentStatus"`
	Gateway       Gateway   `json:"gateway"`
	TransactionID string    `json:"transactionId,omitempty"`
	Message       string    `json:"message"`
	Warnings      []Warning `json:"warnings"`
	State         State     `json:"state"`
	Trail         []State   `json:"trail"`
	Redirect      string    `json:"redirect"`
}

// Policy holds the configurable parts of the workflow
type Policy struct {
	// ClearCartOnFailure also empties the cart when the payment failed
	ClearCartOnFailure bool
}

// Orchestrator runs the bookkeeping that follows a gateway result: record
// the payment, update the order, clear the cart, then send the shopper to
// the tracking page. Each step is independent; a failure is logged, kept as
// a warning and an incident, and the next step still runs.
type Orchestrator struct {
	payments  RecordAPI
	orders    OrderUpdater
	carts     CartClearer
	incidents IncidentRecorder
	policy    Policy
	logger    logrus.FieldLogger
	now       func() time.Time
}

// NewOrchestrator creates a new payment orchestrator
func NewOrchestrator(payments RecordAPI, orders OrderUpdater, carts CartClearer, incidents IncidentRecorder, policy Policy, logger logrus.FieldLogger) *Orchestrator {
	if incidents == nil {
		incidents = NoopIncidentRecorder{}
	}
	return &Orchestrator{
		payments:  payments,
		orders:    orders,
		carts:     carts,
		incidents: incidents,
		policy:    policy,
		logger:    logger,
		now:       time.Now,
	}
}

// TrackingPath is where the shopper lands after any payment attempt
func TrackingPath(orderID int64) string {
	return fmt.Sprintf("/order-tracking/%d", orderID)
}

// Complete runs the workflow for a resolved gateway result
func (o *Orchestrator) Complete(ctx context.Context, attempt Attempt, result Result) *Outcome {
	f := describe(result)

	outcome := &Outcome{
		OrderID:       attempt.OrderID,
		Succeeded:     f.succeeded,
		PaymentStatus: strconv.FormatBool(f.succeeded),
		Gateway:       f.gateway,
		TransactionID: f.transactionID,
		Message:       f.message,
		Warnings:      []Warning{},
		Trail:         []State{StateIdle, StateAwaitingGatewayResult, StateGatewayResolved},
	}
	if outcome.Message == "" {
		if f.succeeded {
			outcome.Message = "Payment succeeded!"
		} else {
			outcome.Message = "Payment failed."
		}
	}

	log := o.logger.WithFields(logrus.Fields{
		"order_id": attempt.OrderID,
		"user_id":  attempt.UserID,
		"gateway":  f.gateway,
		"success":  f.succeeded,
	})

	// 1. Record payment
	err := o.payments.CreatePayment(ctx, Record{
		PaymentMethod:  f.method,
		PaymentStatus:  outcome.PaymentStatus,
		PaymentDate:    o.now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		Amount:         attempt.Amount.Round(2).InexactFloat64(),
		OrderID:        attempt.OrderID,
		UserID:         attempt.UserID,
		TransactionID:  f.transactionID,
		PaymentGateway: f.gateway,
	})
	if err != nil {
		o.fail(ctx, log, outcome, attempt, f, StepRecordPayment, err, "Could not save payment record. Contact support.")
	} else {
		outcome.Trail = append(outcome.Trail, StatePaymentRecorded)
	}

	// 2. Update order
	status := order.StatusPaymentFailed
	if f.succeeded {
		status = order.StatusPaymentSuccessful
	}
	err = o.orders.UpdateStatus(ctx, order.UpdateRequest{
		OrderID:     attempt.OrderID,
		Status:      status,
		TotalAmount: attempt.Amount,
		UserID:      attempt.UserID,
		AddressID:   attempt.AddressID,
	})
	if err != nil {
		message := "Payment failed, and order status could not be updated."
		if f.succeeded {
			message = "Payment succeeded, but order status could not be updated."
		}
		o.fail(ctx, log, outcome, attempt, f, StepUpdateOrder, err, message)
	} else {
		outcome.Trail = append(outcome.Trail, StateOrderUpdated)
	}

	// 3. Clear cart
	if f.succeeded || o.policy.ClearCartOnFailure {
		if err := o.carts.ClearForUser(ctx, attempt.UserID); err != nil {
			o.fail(ctx, log, outcome, attempt, f, StepClearCart, err, "Cart was not cleared automatically.")
		} else {
			outcome.Trail = append(outcome.Trail, StateCartCleared)
		}
	}

	outcome.Trail = append(outcome.Trail, StateNavigatedToTracking)
	outcome.State = StateNavigatedToTracking
	outcome.Redirect = TrackingPath(attempt.OrderID)

	log.WithField("warnings", len(outcome.Warnings)).Info("payment attempt completed")
	return outcome
}

func (o *Orchestrator) fail(ctx context.Context, log logrus.FieldLogger, outcome *Outcome, attempt Attempt, f facts, step Step, err error, message string) {
	log.WithError(err).WithField("step", step).Error("payment bookkeeping step failed")
	outcome.Warnings = append(outcome.Warnings, Warning{Step: step, Message: message})

	incident := &Incident{
		OrderID:       attempt.OrderID,
		UserID:        attempt.UserID,
		Step:          step,
		Gateway:       f.gateway,
		PaymentStatus: outcome.PaymentStatus,
		TransactionID: f.transactionID,
		Error:         err.Error(),
	}
	if recordErr := o.incidents.Record(ctx, incident); recordErr != nil {
		log.WithError(recordErr).WithField("step", step).Error("failed to persist payment incident")
	}
}
