// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/user"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
	"github.com/your-org/storefront/internal/pkg/auth"
)

// CartMerger folds a guest cart into a user's server cart
type CartMerger interface {
	Merge(ctx context.Context, userID int64, sessionID string) (*cart.MergeReport, error)
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	users      *user.Service
	merger     CartMerger
	jwtManager *auth.JWTManager
	sessions   *Sessions
	logger     logrus.FieldLogger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(users *user.Service, merger CartMerger, jwtManager *auth.JWTManager, sessions *Sessions, logger logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{
		users:      users,
		merger:     merger,
		jwtManager: jwtManager,
		sessions:   sessions,
		logger:     logger,
	}
}

// Login handles user login
func (h *AuthHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	session, err := h.users.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Login failed")
		return
	}

	h.authenticated(c, session, http.StatusOK, "Login successful")
}

// Signup handles user registration
func (h *AuthHandler) Signup(c *gin.Context) {
	var req user.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	session, err := h.users.Signup(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Signup failed")
		return
	}

	h.authenticated(c, session, http.StatusCreated, "Sign up successful")
}

// authenticated issues tokens and merges the guest cart, once per
// authentication event
func (h *AuthHandler) authenticated(c *gin.Context, session *user.Session, status int, message string) {
	tokens, err := h.jwtManager.GeneratePair(session.UserID, session.Email)
	if err != nil {
		h.logger.WithError(err).Error("failed to generate tokens")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate tokens",
		})
		return
	}

	if session.Message != "" {
		message = session.Message
	}

	c.JSON(status, gin.H{
		"message": message,
		"data": gin.H{
			"user":       session,
			"tokens":     tokens,
			"cart_merge": h.mergeGuestCart(c, session.UserID),
		},
	})
}

// mergeGuestCart never fails the login; a guest cart that could not be
// merged stays in place for the next attempt
func (h *AuthHandler) mergeGuestCart(c *gin.Context, userID int64) *cart.MergeReport {
	sessionID := h.sessions.Current(c)
	if sessionID == "" {
		return nil
	}

	report, err := h.merger.Merge(c.Request.Context(), userID, sessionID)
	if err != nil {
		h.logger.WithError(err).WithField("user_id", userID).Warn("guest cart merge failed")
		return nil
	}
	return report
}

// RefreshToken handles token refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	claims, err := h.jwtManager.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid or expired refresh token",
		})
		return
	}

	tokens, err := h.jwtManager.GeneratePair(claims.UserID, claims.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate tokens",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Token refreshed successfully",
		"data":    tokens,
	})
}

// Logout ends the browser session. Tokens are stateless and expire on their own.
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	h.sessions.Expire(c)
	h.logger.WithField("user_id", userID).Info("user logged out")

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}
