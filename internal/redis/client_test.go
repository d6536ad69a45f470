package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/redis"
)

func TestNewClientRequiresAddress(t *testing.T) {
	client, err := redis.NewClient("", nil)
	assert.Nil(t, client)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := redis.Connect(context.Background(), mr.Addr(), nil)
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	require.NoError(t, client.Set(context.Background(), "arena", "open", 0).Err())
	got, err := mr.Get("arena")
	require.NoError(t, err)
	assert.Equal(t, "open", got)
}

func TestConnectUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	client, err := redis.Connect(context.Background(), addr, &redis.Options{DialTimeout: 200 * time.Millisecond})
	assert.Nil(t, client)
	require.Error(t, err)
	assert.Equal(t, errors.CodeUnavailable, errors.GetCode(err))
}
