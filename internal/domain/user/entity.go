// internal/domain/user/entity.go
package user

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrInvalidCredentials is returned when the users service rejects a login
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrPasswordMismatch is returned when signup passwords differ
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrSignupRejected is returned when the users service creates no user
	ErrSignupRejected = errors.New("signup failed")
)

// ValidationError carries per-field messages from the users service
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for key := range e.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	messages := make([]string, 0, len(keys))
	for _, key := range keys {
		messages = append(messages, e.Fields[key])
	}
	return "validation failed: " + strings.Join(messages, " | ")
}

// LoginRequest represents user login data
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SignupRequest represents user registration data
type SignupRequest struct {
	FirstName       string `json:"firstName" binding:"required"`
	LastName        string `json:"lastName" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	CountryCode     string `json:"countryCode"`
	PhoneNumber     string `json:"phoneNumber" binding:"required"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

// Session identifies an authenticated shopper
type Session struct {
	UserID  int64  `json:"userId"`
	Email   string `json:"email"`
	Message string `json:"message,omitempty"`
}

// Address is a saved shipping address
type Address struct {
	AddressID    int64  `json:"addressId"`
	UserID       int64  `json:"userId"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	Zip          string `json:"zip"`
	Country      string `json:"country"`
	IsPrimary    bool   `json:"isPrimary"`
}

// LoginPayload is the users service login body
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"Password"`
}

// SignupPayload is the users service create body. PasswordHash carries the
// plain password; the users service hashes it.
type SignupPayload struct {
	FirstName    string `json:"FirstName"`
	LastName     string `json:"LastName"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"PhoneNumber"`
	PasswordHash string `json:"PasswordHash"`
}

// AuthReply is the users service answer to login and signup, including
// rejected attempts
type AuthReply struct {
	UserID  int64             `json:"userId"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

// Primary returns the primary address, or nil when there are none
func Primary(addresses []Address) *Address {
	for i := range addresses {
		if addresses[i].IsPrimary {
			return &addresses[i]
		}
	}
	if len(addresses) > 0 {
		return &addresses[0]
	}
	return nil
}
