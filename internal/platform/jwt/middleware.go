package jwtmw

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// ContextIdentity is the gin context key holding the resolved Identity.
const ContextIdentity = "identity"

const bearerScheme = "Bearer"

// TokenVerifier is the part of the codec the gate depends on.
type TokenVerifier interface {
	Verify(token string, now time.Time) (Identity, error)
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the Identity bound by AuthRequired, if any.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// AuthRequired returns a Gin middleware that rejects requests without a valid,
// unexpired bearer token and binds the token subject to the request context.
func AuthRequired(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		scheme, rest, found := strings.Cut(c.GetHeader("Authorization"), " ")
		// Auth schemes are case-insensitive (RFC 7235).
		if !found || !strings.EqualFold(scheme, bearerScheme) {
			abortUnauthenticated(c, "missing bearer token")
			return
		}
		tokenStr := strings.TrimSpace(rest)
		if tokenStr == "" {
			abortUnauthenticated(c, "empty bearer token")
			return
		}

		id, err := verifier.Verify(tokenStr, time.Now())
		if err != nil {
			abortUnauthenticated(c, err.Error())
			return
		}

		c.Set(ContextIdentity, id)
		c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), id))
		c.Next()
	}
}

func abortUnauthenticated(c *gin.Context, reason string) {
	slog.Debug("request rejected by auth gate", "reason", reason, "path", c.Request.URL.Path, "remote_addr", c.ClientIP())
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
}
