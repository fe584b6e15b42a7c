// internal/interfaces/http/handlers/session.go
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionCookieName = "session_id"

// Sessions issues the guest session cookie that keys the guest cart
type Sessions struct {
	ttl    time.Duration
	secure bool
}

// NewSessions creates a guest session cookie helper
func NewSessions(ttl time.Duration, secure bool) *Sessions {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Sessions{ttl: ttl, secure: secure}
}

// Current returns the session id from the cookie, or "" when there is none
func (s *Sessions) Current(c *gin.Context) string {
	sessionID, err := c.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	if _, err := uuid.Parse(sessionID); err != nil {
		return ""
	}
	return sessionID
}

// GetOrCreate returns the session id, issuing a new cookie when needed.
// The cookie is refreshed on every call so it slides with the cart TTL.
func (s *Sessions) GetOrCreate(c *gin.Context) string {
	sessionID := s.Current(c)
	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	s.set(c, sessionID, int(s.ttl.Seconds()))
	return sessionID
}

// Expire drops the session cookie
func (s *Sessions) Expire(c *gin.Context) {
	s.set(c, "", -1)
}

func (s *Sessions) set(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, value, maxAge, "/", "", s.secure, true)
}
