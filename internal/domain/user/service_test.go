package user

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockBackend struct {
	reply     *AuthReply
	err       error
	addresses []Address

	logins  []LoginPayload
	signups []SignupPayload
}

func (m *mockBackend) Login(_ context.Context, payload LoginPayload) (*AuthReply, error) {
	m.logins = append(m.logins, payload)
	return m.reply, m.err
}

func (m *mockBackend) CreateUser(_ context.Context, payload SignupPayload) (*AuthReply, error) {
	m.signups = append(m.signups, payload)
	return m.reply, m.err
}

func (m *mockBackend) Addresses(context.Context, int64) ([]Address, error) {
	return m.addresses, m.err
}

func newTestService(backend *mockBackend) *Service {
	logger, _ := test.NewNullLogger()
	return NewService(backend, logger)
}

func TestLogin(t *testing.T) {
	backend := &mockBackend{reply: &AuthReply{UserID: 7, Message: "Login successful"}}
	svc := newTestService(backend)

	session, err := svc.Login(context.Background(), &LoginRequest{Email: " Jane@Example.com ", Password: "secret"})
	require.NoError(t, err)

	assert.Equal(t, int64(7), session.UserID)
	assert.Equal(t, "jane@example.com", session.Email)
	assert.Equal(t, LoginPayload{Email: "jane@example.com", Password: "secret"}, backend.logins[0])
}

func TestLogin_Rejected(t *testing.T) {
	svc := newTestService(&mockBackend{reply: &AuthReply{Message: "Invalid"}})

	_, err := svc.Login(context.Background(), &LoginRequest{Email: "a@b.c", Password: "x"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_FieldErrors(t *testing.T) {
	svc := newTestService(&mockBackend{reply: &AuthReply{Errors: map[string]string{"email": "Unknown email"}}})

	_, err := svc.Login(context.Background(), &LoginRequest{Email: "a@b.c", Password: "x"})

	var validation *ValidationError
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, "Unknown email", validation.Fields["email"])
}

func TestSignup(t *testing.T) {
	backend := &mockBackend{reply: &AuthReply{UserID: 9}}
	svc := newTestService(backend)

	session, err := svc.Signup(context.Background(), &SignupRequest{
		FirstName:       "Jane",
		LastName:        "Doe",
		Email:           "JANE@example.com",
		CountryCode:     "+91",
		PhoneNumber:     "9876543210",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(9), session.UserID)
	require.Len(t, backend.signups, 1)
	assert.Equal(t, "+919876543210", backend.signups[0].PhoneNumber)
	assert.Equal(t, "jane@example.com", backend.signups[0].Email)
	assert.Equal(t, "secret1", backend.signups[0].PasswordHash)
}

func TestSignup_PasswordMismatch(t *testing.T) {
	backend := &mockBackend{}
	svc := newTestService(backend)

	_, err := svc.Signup(context.Background(), &SignupRequest{Password: "a", ConfirmPassword: "b"})
	assert.ErrorIs(t, err, ErrPasswordMismatch)
	assert.Empty(t, backend.signups)
}

func TestAddresses_MarksFirstPrimary(t *testing.T) {
	svc := newTestService(&mockBackend{addresses: []Address{{AddressID: 1}, {AddressID: 2}}})

	addresses, err := svc.Addresses(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, addresses[0].IsPrimary)
	assert.False(t, addresses[1].IsPrimary)
	assert.Equal(t, int64(1), Primary(addresses).AddressID)
}

func TestAddresses_KeepsExistingPrimary(t *testing.T) {
	svc := newTestService(&mockBackend{addresses: []Address{{AddressID: 1}, {AddressID: 2, IsPrimary: true}}})

	addresses, err := svc.Addresses(context.Background(), 7)
	require.NoError(t, err)
	assert.False(t, addresses[0].IsPrimary)
	assert.Equal(t, int64(2), Primary(addresses).AddressID)
}

func TestAddresses_Empty(t *testing.T) {
	svc := newTestService(&mockBackend{})

	addresses, err := svc.Addresses(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, addresses)
	assert.Nil(t, Primary(addresses))
}
