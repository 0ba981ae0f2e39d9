package password

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewBcryptHasher(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		cost        int
		workers     int
		wantCost    int
		wantWorkers int64
	}{
		{"explicit values", bcrypt.MinCost, 3, bcrypt.MinCost, 3},
		{"cost too low", 1, 1, bcrypt.DefaultCost, 1},
		{"cost too high", 99, 1, bcrypt.DefaultCost, 1},
		{"zero workers", bcrypt.MinCost, 0, bcrypt.MinCost, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := NewBcryptHasher(tt.cost, tt.workers)
			assert.Equal(t, tt.wantCost, h.cost)
			assert.True(t, h.sem.TryAcquire(tt.wantWorkers))
			assert.False(t, h.sem.TryAcquire(1))
		})
	}
}

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h := NewBcryptHasher(bcrypt.MinCost, 2)

	hashed, err := h.Hash(ctx, "pw123")
	require.NoError(t, err)
	assert.NotEqual(t, "pw123", hashed)
	assert.True(t, strings.HasPrefix(hashed, "$2a$"))
	assert.NotContains(t, hashed, "pw123")

	ok, err := h.Verify(ctx, "pw123", hashed)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify(ctx, "wrong", hashed)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBcryptHasher_FreshSaltPerCall(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h := NewBcryptHasher(bcrypt.MinCost, 1)

	a, err := h.Hash(ctx, "same")
	require.NoError(t, err)
	b, err := h.Hash(ctx, "same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	for _, hashed := range []string{a, b} {
		ok, err := h.Verify(ctx, "same", hashed)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestBcryptHasher_VerifyEmptyHash(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost, 1)
	ok, err := h.Verify(context.Background(), "anything", "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBcryptHasher_VerifyCorruptHash(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost, 1)
	ok, err := h.Verify(context.Background(), "pw", "not-a-bcrypt-hash")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestBcryptHasher_ContextCanceledWhileWaiting(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost, 1)
	require.True(t, h.sem.TryAcquire(1))
	defer h.sem.Release(1)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := h.Hash(ctx, "pw")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	_, err = h.Verify(ctx, "pw", "")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
