// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned by the store when no user has the given username.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateUsername is returned when the username is already registered,
	// whether caught by the existence check or by the store's unique constraint.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrAuthenticationFailed is returned for both unknown usernames and wrong
	// passwords so callers cannot enumerate accounts.
	ErrAuthenticationFailed = errors.New("invalid username or password")

	// ErrInvalidCredentials is returned when username or password is empty.
	ErrInvalidCredentials = errors.New("username and password are required")

	// ErrPasswordTooLong is returned by Register for passwords over MaxPasswordBytes.
	ErrPasswordTooLong = errors.New("password must be at most 72 bytes")
)
