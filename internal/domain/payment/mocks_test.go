package payment

import (
	"context"

	"github.com/your-org/storefront/internal/domain/order"
)

type MockRecordAPI struct {
	Err     error
	Records []Record
}

func (m *MockRecordAPI) CreatePayment(_ context.Context, record Record) error {
	if m.Err != nil {
		return m.Err
	}
	m.Records = append(m.Records, record)
	return nil
}

type MockOrderUpdater struct {
	Err     error
	Updates []order.UpdateRequest
}

func (m *MockOrderUpdater) UpdateStatus(_ context.Context, req order.UpdateRequest) error {
	if m.Err != nil {
		return m.Err
	}
	m.Updates = append(m.Updates, req)
	return nil
}

type MockCartClearer struct {
	Err     error
	Cleared []int64
}

func (m *MockCartClearer) ClearForUser(_ context.Context, userID int64) error {
	if m.Err != nil {
		return m.Err
	}
	m.Cleared = append(m.Cleared, userID)
	return nil
}

type MockIncidents struct {
	Incidents []*Incident
}

func (m *MockIncidents) Record(_ context.Context, incident *Incident) error {
	m.Incidents = append(m.Incidents, incident)
	return nil
}

type MockRazorpayAPI struct {
	Order     *RazorpayOrder
	OrderErr  error
	Verdict   *VerifyResponse
	VerifyErr error

	CreateRequests []CreateOrderRequest
	VerifyRequests []VerifyRequest
}

func (m *MockRazorpayAPI) CreateOrderUSD(_ context.Context, req CreateOrderRequest) (*RazorpayOrder, error) {
	m.CreateRequests = append(m.CreateRequests, req)
	return m.Order, m.OrderErr
}

func (m *MockRazorpayAPI) VerifyPayment(_ context.Context, req VerifyRequest) (*VerifyResponse, error) {
	m.VerifyRequests = append(m.VerifyRequests, req)
	return m.Verdict, m.VerifyErr
}

type MockBraintreeAPI struct {
	Token      string
	TokenErr   error
	Response   *ProcessResponse
	ProcessErr error

	Requests []ProcessRequest
}

func (m *MockBraintreeAPI) GenerateClientToken(_ context.Context) (string, error) {
	return m.Token, m.TokenErr
}

func (m *MockBraintreeAPI) ProcessPayment(_ context.Context, req ProcessRequest) (*ProcessResponse, error) {
	m.Requests = append(m.Requests, req)
	return m.Response, m.ProcessErr
}
