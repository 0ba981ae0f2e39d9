package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"shopping_backend/internal/feature/auth/domain/entity"
)

// mockUserRepository is a mock implementation of UserRepository.
type mockUserRepository struct {
	ExistsFunc         func(ctx context.Context, username string) (bool, error)
	CreateFunc         func(ctx context.Context, user *entity.User) error
	FindByUsernameFunc func(ctx context.Context, username string) (*entity.User, error)
}

func (m *mockUserRepository) Exists(ctx context.Context, username string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, username)
	}
	return false, nil
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	if m.FindByUsernameFunc != nil {
		return m.FindByUsernameFunc(ctx, username)
	}
	return nil, ErrUserNotFound
}

// memoryUsers is a map-backed UserRepository for property-style tests.
type memoryUsers struct {
	mu    sync.Mutex
	users map[string]entity.User
	next  uint
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: map[string]entity.User{}}
}

func (m *memoryUsers) Exists(_ context.Context, username string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.users[username]
	return ok, nil
}

func (m *memoryUsers) Create(_ context.Context, user *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.Username]; ok {
		return ErrDuplicateUsername
	}
	m.next++
	user.ID = m.next
	m.users[user.Username] = *user
	return nil
}

func (m *memoryUsers) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}

// bcryptHasher is a minimal PasswordHasher backed by bcrypt at MinCost.
type bcryptHasher struct{}

func (bcryptHasher) Hash(_ context.Context, plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.MinCost)
	return string(b), err
}

func (bcryptHasher) Verify(_ context.Context, plaintext, hashed string) (bool, error) {
	if hashed == "" {
		return false, nil
	}
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil, nil
}

// mockHasher lets tests fail hashing or verification.
type mockHasher struct {
	HashFunc   func(ctx context.Context, plaintext string) (string, error)
	VerifyFunc func(ctx context.Context, plaintext, hashed string) (bool, error)
}

func (m *mockHasher) Hash(ctx context.Context, plaintext string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(ctx, plaintext)
	}
	return "hashed:" + plaintext, nil
}

func (m *mockHasher) Verify(ctx context.Context, plaintext, hashed string) (bool, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, plaintext, hashed)
	}
	return hashed == "hashed:"+plaintext, nil
}

// mockTokenIssuer records the subject and time it was asked to sign.
type mockTokenIssuer struct {
	IssueFunc func(subject string, now time.Time) (string, error)
}

func (m *mockTokenIssuer) Issue(subject string, now time.Time) (string, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(subject, now)
	}
	return "token-for-" + subject, nil
}

func TestAuthUsecase_Register(t *testing.T) {
	t.Parallel()

	t.Run("success: password is hashed before persisting", func(t *testing.T) {
		t.Parallel()

		var saved *entity.User
		repo := &mockUserRepository{
			CreateFunc: func(_ context.Context, user *entity.User) error {
				saved = user
				return nil
			},
		}
		uc := NewAuthUsecase(repo, bcryptHasher{}, &mockTokenIssuer{})

		require.NoError(t, uc.Register(context.Background(), "alice", "pw123"))
		require.NotNil(t, saved)
		assert.Equal(t, "alice", saved.Username)
		assert.NotEqual(t, "pw123", saved.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.Password), []byte("pw123")))
	})

	t.Run("failure: existing username is rejected without a write", func(t *testing.T) {
		t.Parallel()

		repo := &mockUserRepository{
			ExistsFunc: func(context.Context, string) (bool, error) { return true, nil },
			CreateFunc: func(context.Context, *entity.User) error {
				t.Error("Create must not be called for a duplicate username")
				return nil
			},
		}
		hasher := &mockHasher{HashFunc: func(context.Context, string) (string, error) {
			t.Error("Hash must not be called for a duplicate username")
			return "", nil
		}}
		uc := NewAuthUsecase(repo, hasher, &mockTokenIssuer{})

		err := uc.Register(context.Background(), "alice", "pw123")
		assert.ErrorIs(t, err, ErrDuplicateUsername)
	})

	t.Run("failure: unique constraint race surfaces as duplicate", func(t *testing.T) {
		t.Parallel()

		repo := &mockUserRepository{
			CreateFunc: func(context.Context, *entity.User) error { return ErrDuplicateUsername },
		}
		uc := NewAuthUsecase(repo, &mockHasher{}, &mockTokenIssuer{})

		err := uc.Register(context.Background(), "alice", "pw123")
		assert.ErrorIs(t, err, ErrDuplicateUsername)
	})

	t.Run("failure: empty inputs", func(t *testing.T) {
		t.Parallel()

		uc := NewAuthUsecase(&mockUserRepository{}, &mockHasher{}, &mockTokenIssuer{})
		assert.ErrorIs(t, uc.Register(context.Background(), "", "pw"), ErrInvalidCredentials)
		assert.ErrorIs(t, uc.Register(context.Background(), "alice", ""), ErrInvalidCredentials)
	})

	t.Run("failure: store and hasher errors are wrapped", func(t *testing.T) {
		t.Parallel()

		dbErr := errors.New("database error")
		uc := NewAuthUsecase(&mockUserRepository{
			ExistsFunc: func(context.Context, string) (bool, error) { return false, dbErr },
		}, &mockHasher{}, &mockTokenIssuer{})
		assert.ErrorIs(t, uc.Register(context.Background(), "alice", "pw"), dbErr)

		hashErr := errors.New("pool closed")
		uc = NewAuthUsecase(&mockUserRepository{}, &mockHasher{
			HashFunc: func(context.Context, string) (string, error) { return "", hashErr },
		}, &mockTokenIssuer{})
		err := uc.Register(context.Background(), "alice", "pw")
		assert.ErrorIs(t, err, hashErr)
		// The hasher adds its own context; the usecase does not prefix again.
		assert.Equal(t, "pool closed", err.Error())
	})
}

func TestAuthUsecase_Login(t *testing.T) {
	t.Parallel()

	fixedNow := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	stored := &entity.User{ID: 7, Username: "alice", Password: "hashed:pw123"}
	repo := &mockUserRepository{
		FindByUsernameFunc: func(_ context.Context, username string) (*entity.User, error) {
			if username == stored.Username {
				return stored, nil
			}
			return nil, ErrUserNotFound
		},
	}

	t.Run("success: token minted for the username at now", func(t *testing.T) {
		t.Parallel()

		issuer := &mockTokenIssuer{IssueFunc: func(subject string, now time.Time) (string, error) {
			assert.Equal(t, "alice", subject)
			assert.Equal(t, fixedNow, now)
			return "signed", nil
		}}
		uc := NewAuthUsecase(repo, &mockHasher{}, issuer)
		uc.now = func() time.Time { return fixedNow }

		token, err := uc.Login(context.Background(), "alice", "pw123")
		require.NoError(t, err)
		assert.Equal(t, "signed", token)
	})

	t.Run("failure: unknown user and wrong password are indistinguishable", func(t *testing.T) {
		t.Parallel()

		var verified []string
		hasher := &mockHasher{VerifyFunc: func(_ context.Context, plaintext, hashed string) (bool, error) {
			verified = append(verified, hashed)
			return hashed == "hashed:"+plaintext, nil
		}}
		uc := NewAuthUsecase(repo, hasher, &mockTokenIssuer{})

		_, errUnknown := uc.Login(context.Background(), "nobody", "pw123")
		_, errWrong := uc.Login(context.Background(), "alice", "wrong")

		assert.ErrorIs(t, errUnknown, ErrAuthenticationFailed)
		assert.ErrorIs(t, errWrong, ErrAuthenticationFailed)
		assert.Equal(t, errUnknown.Error(), errWrong.Error())
		// The hasher runs in both cases.
		assert.Len(t, verified, 2)
	})

	t.Run("failure: store outage is not reported as bad credentials", func(t *testing.T) {
		t.Parallel()

		dbErr := errors.New("connection refused")
		uc := NewAuthUsecase(&mockUserRepository{
			FindByUsernameFunc: func(context.Context, string) (*entity.User, error) { return nil, dbErr },
		}, &mockHasher{}, &mockTokenIssuer{})

		_, err := uc.Login(context.Background(), "alice", "pw123")
		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, ErrAuthenticationFailed)
	})

	t.Run("failure: token signing error", func(t *testing.T) {
		t.Parallel()

		uc := NewAuthUsecase(repo, &mockHasher{}, &mockTokenIssuer{
			IssueFunc: func(string, time.Time) (string, error) { return "", errors.New("failed to sign token") },
		})

		_, err := uc.Login(context.Background(), "alice", "pw123")
		require.Error(t, err)
		assert.Equal(t, "failed to generate token: failed to sign token", err.Error())
	})

	t.Run("failure: hasher error", func(t *testing.T) {
		t.Parallel()

		uc := NewAuthUsecase(repo, &mockHasher{
			VerifyFunc: func(context.Context, string, string) (bool, error) { return false, context.Canceled },
		}, &mockTokenIssuer{})

		_, err := uc.Login(context.Background(), "alice", "pw123")
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, context.Canceled.Error(), err.Error())
	})
}

func TestAuthUsecase_PasswordLengthLimit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	users := newMemoryUsers()
	uc := NewAuthUsecase(users, bcryptHasher{}, &mockTokenIssuer{})

	atLimit := strings.Repeat("a", MaxPasswordBytes)
	overLimit := atLimit + "a"

	assert.ErrorIs(t, uc.Register(ctx, "bob", overLimit), ErrPasswordTooLong)
	exists, err := users.Exists(ctx, "bob")
	require.NoError(t, err)
	assert.False(t, exists, "rejected registration must not be stored")

	require.NoError(t, uc.Register(ctx, "carol", atLimit))

	_, err = uc.Login(ctx, "carol", overLimit)
	assert.ErrorIs(t, err, ErrAuthenticationFailed, "bcrypt truncation must not let a longer password in")

	token, err := uc.Login(ctx, "carol", atLimit)
	require.NoError(t, err)
	assert.Equal(t, "token-for-carol", token)

	// Multi-byte runes count by bytes.
	assert.ErrorIs(t, uc.Register(ctx, "dave", strings.Repeat("é", 37)), ErrPasswordTooLong)
}

func TestAuthUsecase_RegisterThenLogin(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	users := newMemoryUsers()
	uc := NewAuthUsecase(users, bcryptHasher{}, &mockTokenIssuer{})

	for _, name := range []string{"alice", "bob", "carol"} {
		require.NoError(t, uc.Register(ctx, name, "pw-"+name))
		exists, err := users.Exists(ctx, name)
		require.NoError(t, err)
		assert.True(t, exists)
	}

	before, err := users.FindByUsername(ctx, "alice")
	require.NoError(t, err)

	assert.ErrorIs(t, uc.Register(ctx, "alice", "other"), ErrDuplicateUsername)

	after, err := users.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, before, after, "duplicate registration must not alter the stored record")

	for _, name := range []string{"alice", "bob", "carol"} {
		token, err := uc.Login(ctx, name, "pw-"+name)
		require.NoError(t, err)
		assert.Equal(t, "token-for-"+name, token)

		_, err = uc.Login(ctx, name, "pw-"+name+"x")
		assert.ErrorIs(t, err, ErrAuthenticationFailed)
	}
}
