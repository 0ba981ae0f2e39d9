// Package handler provides the HTTP handlers for the auth feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"shopping_backend/internal/feature/auth/transport/http/dto"
	"shopping_backend/internal/feature/auth/usecase"
	jwtmw "shopping_backend/internal/platform/jwt"
)

// Plain-text bodies returned to clients.
const (
	msgRegistered     = "user registered"
	msgInvalidRequest = "invalid request"
	msgInternal       = "internal error"
)

// AuthUsecase defines the auth operations the handler needs.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type AuthUsecase interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (string, error)
}

// AuthHandler handles HTTP requests for registration and login.
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register handles POST /auth/register.
//   - 200 with a confirmation text on success
//   - 400 with a reason on a bad body or a taken username
//   - 500 on store or hashing failures
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.CredentialsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.String(http.StatusBadRequest, msgInvalidRequest)
		return
	}

	err := h.auth.Register(c.Request.Context(), req.Username, req.Password)
	switch {
	case err == nil:
		slog.Info("user registered", "username", req.Username, "remote_addr", c.ClientIP())
		c.String(http.StatusOK, msgRegistered)
	case errors.Is(err, usecase.ErrDuplicateUsername):
		slog.Warn("register rejected", "reason", "duplicate username", "username", req.Username, "remote_addr", c.ClientIP())
		c.String(http.StatusBadRequest, usecase.ErrDuplicateUsername.Error())
	case errors.Is(err, usecase.ErrInvalidCredentials):
		c.String(http.StatusBadRequest, usecase.ErrInvalidCredentials.Error())
	case errors.Is(err, usecase.ErrPasswordTooLong):
		slog.Warn("register rejected", "reason", "password too long", "username", req.Username, "remote_addr", c.ClientIP())
		c.String(http.StatusBadRequest, usecase.ErrPasswordTooLong.Error())
	default:
		slog.Error("register failed", "error", err, "username", req.Username, "remote_addr", c.ClientIP())
		c.String(http.StatusInternalServerError, msgInternal)
	}
}

// Login handles POST /auth/login.
//   - 200 with {"token": ...} on success
//   - 400 with a uniform reason for any credential failure
//   - 500 on store or signing failures
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.CredentialsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.String(http.StatusBadRequest, msgInvalidRequest)
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	switch {
	case err == nil:
		slog.Info("user login successful", "username", req.Username, "remote_addr", c.ClientIP())
		c.JSON(http.StatusOK, dto.TokenRes{Token: token})
	case errors.Is(err, usecase.ErrAuthenticationFailed):
		// Same body for unknown user and wrong password.
		slog.Warn("login failed", "username", req.Username, "remote_addr", c.ClientIP())
		c.String(http.StatusBadRequest, usecase.ErrAuthenticationFailed.Error())
	default:
		slog.Error("login error", "error", err, "username", req.Username, "remote_addr", c.ClientIP())
		c.String(http.StatusInternalServerError, msgInternal)
	}
}

// Me handles GET /auth/me behind the auth gate and echoes the token subject.
func (h *AuthHandler) Me(c *gin.Context) {
	id, ok := jwtmw.IdentityFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}
	c.JSON(http.StatusOK, dto.MeRes{Username: id.Subject})
}
