package services

import "context"

// LoginLimiter throttles repeated failed logins per client key.
type LoginLimiter interface {
	// Blocked reports whether key has used up its failed attempts.
	Blocked(ctx context.Context, key string) (bool, error)
	// RecordFailure counts one failed attempt for key.
	RecordFailure(ctx context.Context, key string) error
	// Reset clears the failed attempts of key.
	Reset(ctx context.Context, key string) error
}

type noopLoginLimiter struct{}

// NewNoopLoginLimiter returns a LoginLimiter that never blocks.
func NewNoopLoginLimiter() LoginLimiter {
	return noopLoginLimiter{}
}

func (noopLoginLimiter) Blocked(context.Context, string) (bool, error) { return false, nil }

func (noopLoginLimiter) RecordFailure(context.Context, string) error { return nil }

func (noopLoginLimiter) Reset(context.Context, string) error { return nil }
