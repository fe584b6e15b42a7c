// internal/domain/user/service.go
package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Backend is the users service
type Backend interface {
	Login(ctx context.Context, payload LoginPayload) (*AuthReply, error)
	CreateUser(ctx context.Context, payload SignupPayload) (*AuthReply, error)
	Addresses(ctx context.Context, userID int64) ([]Address, error)
}

// Service handles user business logic
type Service struct {
	backend Backend
	logger  logrus.FieldLogger
}

// NewService creates a new user service
func NewService(backend Backend, logger logrus.FieldLogger) *Service {
	return &Service{
		backend: backend,
		logger:  logger,
	}
}

// Login authenticates against the users service
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*Session, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	reply, err := s.backend.Login(ctx, LoginPayload{Email: email, Password: req.Password})
	if err != nil {
		return nil, fmt.Errorf("failed to login: %w", err)
	}
	if reply == nil || reply.UserID <= 0 {
		if reply != nil && len(reply.Errors) > 0 {
			return nil, &ValidationError{Fields: reply.Errors}
		}
		s.logger.WithField("email", email).Info("login rejected")
		return nil, ErrInvalidCredentials
	}

	s.logger.WithField("user_id", reply.UserID).Info("user logged in")
	return &Session{UserID: reply.UserID, Email: email, Message: reply.Message}, nil
}

// Signup creates an account and returns its session
func (s *Service) Signup(ctx context.Context, req *SignupRequest) (*Session, error) {
	if req.Password != req.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	reply, err := s.backend.CreateUser(ctx, SignupPayload{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        email,
		PhoneNumber:  strings.TrimSpace(req.CountryCode) + strings.TrimSpace(req.PhoneNumber),
		PasswordHash: req.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	if reply == nil || reply.UserID <= 0 {
		if reply != nil && len(reply.Errors) > 0 {
			return nil, &ValidationError{Fields: reply.Errors}
		}
		return nil, ErrSignupRejected
	}

	s.logger.WithField("user_id", reply.UserID).Info("user signed up")
	return &Session{UserID: reply.UserID, Email: email, Message: reply.Message}, nil
}

// Addresses returns the user's addresses with exactly one marked primary
// when any exist
func (s *Service) Addresses(ctx context.Context, userID int64) ([]Address, error) {
	addresses, err := s.backend.Addresses(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get addresses: %w", err)
	}
	if addresses == nil {
		return []Address{}, nil
	}

	hasPrimary := false
	for _, address := range addresses {
		if address.IsPrimary {
			hasPrimary = true
			break
		}
	}
	if !hasPrimary && len(addresses) > 0 {
		addresses[0].IsPrimary = true
	}
	return addresses, nil
}
