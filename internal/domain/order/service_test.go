package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/pkg/money"
)

func newTestService(backend Backend) *Service {
	logger, _ := test.NewNullLogger()
	svc := NewService(backend, logger)
	svc.now = func() time.Time { return time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC) }
	return svc
}

func TestCreateOrder_Preconditions(t *testing.T) {
	backend := NewMockBackend(101)
	svc := newTestService(backend)
	ctx := context.Background()

	_, err := svc.CreateOrder(ctx, CreateRequest{UserID: 1, AddressID: 0, TotalAmount: decimal.NewFromInt(10)})
	assert.ErrorIs(t, err, ErrMissingAddress)

	_, err = svc.CreateOrder(ctx, CreateRequest{UserID: 1, AddressID: 5, TotalAmount: decimal.Zero})
	assert.ErrorIs(t, err, ErrInvalidTotal)

	_, err = svc.CreateOrder(ctx, CreateRequest{UserID: 0, AddressID: 5, TotalAmount: decimal.NewFromInt(10)})
	assert.ErrorIs(t, err, ErrMissingUser)

	assert.Zero(t, backend.Calls, "preconditions fail before any network call")
}

func TestCreateOrder_PostsPaymentPending(t *testing.T) {
	backend := NewMockBackend(101)
	svc := newTestService(backend)

	orderID, err := svc.CreateOrder(context.Background(), CreateRequest{
		UserID:      1,
		AddressID:   5,
		TotalAmount: decimal.RequireFromString("49.99"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(101), orderID)

	require.Len(t, backend.Created, 1)
	created := backend.Created[0]
	assert.Equal(t, StatusPaymentPending, created.Status)
	assert.Equal(t, 49.99, created.TotalAmount)
	assert.Equal(t, int64(5), created.AddressID)
	assert.Equal(t, "2025-03-01T10:30:00.000Z", created.OrderDate)
}

func TestCreateOrder_BackendRejection(t *testing.T) {
	backend := NewMockBackend(0)
	backend.CreateErr = errors.New("400 bad request")
	svc := newTestService(backend)

	_, err := svc.CreateOrder(context.Background(), CreateRequest{UserID: 1, AddressID: 5, TotalAmount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, backend.CreateErr)
}

func TestCreateOrder_MissingOrderID(t *testing.T) {
	backend := NewMockBackend(0)
	svc := newTestService(backend)

	_, err := svc.CreateOrder(context.Background(), CreateRequest{UserID: 1, AddressID: 5, TotalAmount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, ErrNoOrderID)
}

func TestConfirmItems_SingleBatch(t *testing.T) {
	backend := NewMockBackend(101)
	svc := newTestService(backend)

	lines := []Line{
		{SKU: "12", Quantity: 2, UnitPrice: decimal.RequireFromString("10.00")},
		{SKU: "34", Quantity: 1, UnitPrice: decimal.RequireFromString("29.99")},
	}
	require.NoError(t, svc.ConfirmItems(context.Background(), 101, lines))

	require.Len(t, backend.Items, 1, "items are posted in one batch")
	assert.Equal(t, []ItemPayload{
		{Quantity: 2, Price: 20, OrderID: 101, ProductSkuID: 12},
		{Quantity: 1, Price: 29.99, OrderID: 101, ProductSkuID: 34},
	}, backend.Items[0])
}

func TestConfirmItems_SnapshotIsImmutable(t *testing.T) {
	backend := NewMockBackend(101)
	svc := newTestService(backend)

	lines := []Line{{SKU: "12", Quantity: 2, UnitPrice: decimal.NewFromInt(10)}}
	require.NoError(t, svc.ConfirmItems(context.Background(), 101, lines))

	// The live cart changes after confirmation
	lines[0].Quantity = 9
	lines[0].SKU = "99"

	stored := backend.Items[0][0]
	assert.Equal(t, 2, stored.Quantity)
	assert.Equal(t, int64(12), stored.ProductSkuID)
}

func TestConfirmItems_NonNumericSKU(t *testing.T) {
	backend := NewMockBackend(101)
	svc := newTestService(backend)

	err := svc.ConfirmItems(context.Background(), 101, []Line{{SKU: "ABC123", Quantity: 1, UnitPrice: decimal.NewFromInt(1)}})
	assert.ErrorIs(t, err, ErrInvalidSKU)
	assert.Zero(t, backend.Calls)
}

func TestConfirmItems_Empty(t *testing.T) {
	svc := newTestService(NewMockBackend(101))

	err := svc.ConfirmItems(context.Background(), 101, nil)
	assert.ErrorIs(t, err, ErrNoItems)
}

func TestUpdateStatusAndCancel(t *testing.T) {
	backend := NewMockBackend(101)
	svc := newTestService(backend)
	ctx := context.Background()

	req := UpdateRequest{OrderID: 101, Status: StatusPaymentSuccessful, TotalAmount: decimal.RequireFromString("49.99"), UserID: 1, AddressID: 5}
	require.NoError(t, svc.UpdateStatus(ctx, req))
	require.NoError(t, svc.Cancel(ctx, req))

	updates := backend.Updates[101]
	require.Len(t, updates, 2)
	assert.Equal(t, StatusPaymentSuccessful, updates[0].Status)
	assert.Equal(t, StatusCancelled, updates[1].Status)
	assert.Equal(t, 49.99, updates[1].TotalAmount)
}

func TestListByUser_Defaults(t *testing.T) {
	backend := NewMockBackend(0)
	svc := newTestService(backend)

	orders, err := svc.ListByUser(context.Background(), ListRequest{UserID: 1})
	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
}

func TestPayable(t *testing.T) {
	backend := NewMockBackend(0)
	backend.Stored[101] = &Order{OrderID: 101, UserID: 7, AddressID: 5, Status: StatusPaymentPending}
	backend.Stored[102] = &Order{OrderID: 102, UserID: 7, AddressID: 5, Status: StatusPaymentSuccessful}
	backend.Stored[103] = &Order{OrderID: 103, UserID: 7, AddressID: 5, Status: StatusPaymentFailed}
	svc := newTestService(backend)
	ctx := context.Background()

	stored, err := svc.Payable(ctx, 7, 101)
	require.NoError(t, err)
	assert.Equal(t, int64(5), stored.AddressID)

	_, err = svc.Payable(ctx, 8, 101)
	assert.ErrorIs(t, err, ErrOrderNotFound, "another user's order looks missing")

	_, err = svc.Payable(ctx, 7, 999)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = svc.Payable(ctx, 7, 102)
	assert.ErrorIs(t, err, ErrOrderNotPayable)

	_, err = svc.Payable(ctx, 7, 103)
	assert.NoError(t, err, "a failed payment can be retried")

	_, err = svc.Payable(ctx, 7, 0)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrder_Matches(t *testing.T) {
	stored := &Order{OrderID: 101, AddressID: 5, TotalAmount: money.NewPrice(decimal.RequireFromString("49.99"))}

	assert.NoError(t, stored.Matches(0, decimal.Zero))
	assert.NoError(t, stored.Matches(5, decimal.RequireFromString("49.990")))
	assert.ErrorIs(t, stored.Matches(6, decimal.Zero), ErrOrderMismatch)
	assert.ErrorIs(t, stored.Matches(5, decimal.NewFromInt(1)), ErrOrderMismatch)
}
