// Package jwtmw issues and verifies bearer tokens and gates routes on them.
package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification failures. Every error returned by Codec.Verify is one of these.
var (
	// ErrMalformed covers wrong segment counts, bad base64, bad JSON and missing claims.
	ErrMalformed = errors.New("malformed token")

	// ErrInvalidSignature is returned when the MAC does not match or the algorithm is not HS256.
	ErrInvalidSignature = errors.New("invalid token signature")

	// ErrExpired is returned when now >= exp.
	ErrExpired = errors.New("token expired")
)

// Identity is the subject resolved from a valid token.
type Identity struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Codec signs and verifies HS256 compact tokens carrying {sub, iat, exp}.
// The secret is fixed for the life of the process; changing it invalidates
// every outstanding token.
type Codec struct {
	secret   []byte
	validity time.Duration
}

// NewCodec creates a Codec with the provided secret and validity window.
func NewCodec(secret string, validity time.Duration) *Codec {
	return &Codec{
		secret:   []byte(secret),
		validity: validity,
	}
}

// Validity returns the configured token lifetime.
func (c *Codec) Validity() time.Duration {
	return c.validity
}

// Issue creates a signed token for subject, valid from now until now+validity.
func (c *Codec) Issue(subject string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.validity)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of tokenStr against now.
// No leeway is applied.
func (c *Codec) Verify(tokenStr string, now time.Time) (Identity, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenStr, &claims,
		func(*jwt.Token) (interface{}, error) {
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return Identity{}, classify(err)
	}
	if claims.Subject == "" || claims.ExpiresAt == nil {
		return Identity{}, ErrMalformed
	}

	id := Identity{
		Subject:   claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		id.IssuedAt = claims.IssuedAt.Time
	}
	return id, nil
}

// classify maps golang-jwt errors onto the package sentinels.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	default:
		return ErrMalformed
	}
}
