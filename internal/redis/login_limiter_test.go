package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snackbar/internal/services"
)

var _ services.LoginLimiter = (*LoginLimiter)(nil)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := Initialize("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func TestInitialize_BadURL(t *testing.T) {
	_, err := Initialize("not a url")
	require.Error(t, err)
}

func TestLoginLimiter(t *testing.T) {
	ctx := context.Background()
	client, mr := newTestClient(t)
	limiter := NewLoginLimiter(client, 3, 15*time.Minute)

	for i := 0; i < 3; i++ {
		blocked, err := limiter.Blocked(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.False(t, blocked, "attempt %d", i)
		require.NoError(t, limiter.RecordFailure(ctx, "10.0.0.1"))
	}

	blocked, err := limiter.Blocked(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, blocked)

	blocked, err = limiter.Blocked(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.False(t, blocked)

	assert.Equal(t, 15*time.Minute, mr.TTL(loginFailPrefix+"10.0.0.1"))
}

func TestLoginLimiter_WindowExpires(t *testing.T) {
	ctx := context.Background()
	client, mr := newTestClient(t)
	limiter := NewLoginLimiter(client, 1, time.Minute)

	require.NoError(t, limiter.RecordFailure(ctx, "10.0.0.1"))
	blocked, err := limiter.Blocked(ctx, "10.0.0.1")
	require.NoError(t, err)
	require.True(t, blocked)

	mr.FastForward(time.Minute + time.Second)

	blocked, err = limiter.Blocked(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestLoginLimiter_WindowStartsAtFirstFailure(t *testing.T) {
	ctx := context.Background()
	client, mr := newTestClient(t)
	limiter := NewLoginLimiter(client, 5, time.Minute)

	require.NoError(t, limiter.RecordFailure(ctx, "10.0.0.1"))
	require.Equal(t, time.Minute, mr.TTL(loginFailPrefix+"10.0.0.1"))

	mr.FastForward(20 * time.Second)
	require.NoError(t, limiter.RecordFailure(ctx, "10.0.0.1"))

	assert.Equal(t, 40*time.Second, mr.TTL(loginFailPrefix+"10.0.0.1"))
	n, err := mr.Get(loginFailPrefix + "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "2", n)
}

func TestLoginLimiter_CounterWithoutTTLHeals(t *testing.T) {
	ctx := context.Background()
	client, mr := newTestClient(t)
	limiter := NewLoginLimiter(client, 1, time.Minute)

	// A counter left behind without an expiry.
	require.NoError(t, mr.Set(loginFailPrefix+"10.0.0.1", "7"))
	require.Zero(t, mr.TTL(loginFailPrefix+"10.0.0.1"))

	require.NoError(t, limiter.RecordFailure(ctx, "10.0.0.1"))
	assert.Equal(t, time.Minute, mr.TTL(loginFailPrefix+"10.0.0.1"))

	mr.FastForward(time.Minute + time.Second)
	blocked, err := limiter.Blocked(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestLoginLimiter_Reset(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestClient(t)
	limiter := NewLoginLimiter(client, 1, time.Minute)

	require.NoError(t, limiter.RecordFailure(ctx, "10.0.0.1"))
	require.NoError(t, limiter.Reset(ctx, "10.0.0.1"))

	blocked, err := limiter.Blocked(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestLoginLimiter_ServerDown(t *testing.T) {
	ctx := context.Background()
	client, mr := newTestClient(t)
	limiter := NewLoginLimiter(client, 1, time.Minute)

	mr.Close()

	_, err := limiter.Blocked(ctx, "10.0.0.1")
	require.Error(t, err)
	require.Error(t, limiter.RecordFailure(ctx, "10.0.0.1"))
	require.Error(t, client.Ping(ctx))
}
