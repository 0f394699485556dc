package cache

import (
	"context"
	"testing"
	"time"

	"aspiro/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedis_DisabledWithoutAddr(t *testing.T) {
	r := NewRedis(context.Background(), config.RedisConfig{}, nil)

	assert.False(t, r.Enabled())
	assert.ErrorIs(t, r.Ping(context.Background()), ErrUnavailable)

	var out []string
	found, err := r.GetJSON(context.Background(), "skills:extract:x", &out)
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, r.SetJSON(context.Background(), "skills:extract:x", []string{"Go"}, time.Minute))
	assert.NoError(t, r.Close())
}

func TestRedis_UnreachableBypasses(t *testing.T) {
	r := NewRedis(context.Background(), config.RedisConfig{Addr: "127.0.0.1:1"}, nil)

	assert.False(t, r.Enabled())
	assert.Equal(t, defaultTTL, r.ttl)
}

func TestRedis_NilReceiver(t *testing.T) {
	var r *Redis
	assert.False(t, r.Enabled())
	assert.NoError(t, r.Close())
	found, err := r.GetJSON(context.Background(), "k", &struct{}{})
	assert.NoError(t, err)
	assert.False(t, found)
}
