package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shopping_backend/internal/feature/auth/domain/entity"
)

// UserRepository abstracts the credential store.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Exists reports whether a user with the username is persisted.
	Exists(ctx context.Context, username string) (bool, error)

	// Create persists a new user. It returns ErrDuplicateUsername when the
	// store's unique constraint rejects the username.
	Create(ctx context.Context, user *entity.User) error

	// FindByUsername returns ErrUserNotFound when no user matches.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
}

// PasswordHasher hashes and verifies plaintext passwords.
type PasswordHasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)
	Verify(ctx context.Context, plaintext, hashed string) (bool, error)
}

// TokenIssuer mints bearer tokens for an authenticated subject.
type TokenIssuer interface {
	Issue(subject string, now time.Time) (string, error)
}

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// authUsecase implements registration and login.
type authUsecase struct {
	users  UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
	now    func() time.Time
}

// NewAuthUsecase wires the auth usecase to its collaborators.
func NewAuthUsecase(users UserRepository, hasher PasswordHasher, tokens TokenIssuer) *authUsecase {
	return &authUsecase{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		now:    time.Now,
	}
}

// Register stores a new user with a hashed password.
// Nothing is written when the username is already taken.
func (u *authUsecase) Register(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return ErrInvalidCredentials
	}
	if len(password) > MaxPasswordBytes {
		return ErrPasswordTooLong
	}

	exists, err := u.users.Exists(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return ErrDuplicateUsername
	}

	hashed, err := u.hasher.Hash(ctx, password)
	if err != nil {
		return err
	}

	// A concurrent registration may win between Exists and Create; the store
	// reports that case as ErrDuplicateUsername.
	return u.users.Create(ctx, &entity.User{Username: username, Password: hashed})
}

// Login verifies the credentials and returns a signed token.
// The password is verified even when the user does not exist.
func (u *authUsecase) Login(ctx context.Context, username, password string) (string, error) {
	// bcrypt would compare only the first 72 bytes; such a password was never registrable.
	if len(password) > MaxPasswordBytes {
		return "", ErrAuthenticationFailed
	}

	user, err := u.users.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	var stored string
	if user != nil {
		stored = user.Password
	}
	ok, verifyErr := u.hasher.Verify(ctx, password, stored)
	if verifyErr != nil {
		return "", verifyErr
	}
	if user == nil || !ok {
		return "", ErrAuthenticationFailed
	}

	token, err := u.tokens.Issue(user.Username, u.now())
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}
