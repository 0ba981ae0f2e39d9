// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

// CredentialsReq is the request body for /auth/register and /auth/login.
type CredentialsReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenRes is returned by a successful /auth/login.
type TokenRes struct {
	Token string `json:"token"`
}

// MeRes describes the caller resolved from the bearer token.
type MeRes struct {
	Username string `json:"username"`
}
