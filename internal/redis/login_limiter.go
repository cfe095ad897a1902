package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const loginFailPrefix = "login_fail:"

// recordFailure counts a failure and starts the window in the same atomic
// step. A counter found without a TTL gets one, so no client stays locked
// out for good.
var recordFailure = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if redis.call("PTTL", KEYS[1]) < 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return n
`)

// LoginLimiter counts failed admin logins per client in Redis. The counter
// of a client expires window after its first failure.
type LoginLimiter struct {
	client      *Client
	maxAttempts int64
	window      time.Duration
}

func NewLoginLimiter(client *Client, maxAttempts int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{client: client, maxAttempts: int64(maxAttempts), window: window}
}

func (l *LoginLimiter) Blocked(ctx context.Context, key string) (bool, error) {
	n, err := l.client.rdb.Get(ctx, loginFailPrefix+key).Int64()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get login failures: %w", err)
	}
	return n >= l.maxAttempts, nil
}

func (l *LoginLimiter) RecordFailure(ctx context.Context, key string) error {
	keys := []string{loginFailPrefix + key}
	if err := recordFailure.Run(ctx, l.client.rdb, keys, l.window.Milliseconds()).Err(); err != nil {
		return fmt.Errorf("failed to count login failure: %w", err)
	}
	return nil
}

func (l *LoginLimiter) Reset(ctx context.Context, key string) error {
	if err := l.client.rdb.Del(ctx, loginFailPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to reset login failures: %w", err)
	}
	return nil
}
