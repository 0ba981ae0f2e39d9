package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopping_backend/internal/config"
)

func TestNewRedisClient_DisabledWithoutHost(t *testing.T) {
	t.Parallel()

	rdb, err := NewRedisClient(context.Background(), config.RedisConfig{Port: "6379"})
	require.NoError(t, err)
	assert.Nil(t, rdb)
}

func TestNewRedisClient_UnreachableHost(t *testing.T) {
	t.Parallel()

	// Port 1 on loopback refuses connections immediately.
	rdb, err := NewRedisClient(context.Background(), config.RedisConfig{Host: "127.0.0.1", Port: "1"})
	assert.Error(t, err)
	assert.Nil(t, rdb)
}
