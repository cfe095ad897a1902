package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultSessionTimeout is the lifetime of an admin session.
const DefaultSessionTimeout = 8 * time.Hour

// SessionRegistry tracks issued admin tokens in memory. Sessions do not
// survive a restart. Expired tokens are evicted when they are next checked;
// there is no background sweep.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]time.Time
	timeout  time.Duration
	now      func() time.Time
}

// NewSessionRegistry returns an empty registry. A non-positive timeout means
// DefaultSessionTimeout and a nil now means time.Now.
func NewSessionRegistry(timeout time.Duration, now func() time.Time) *SessionRegistry {
	if timeout <= 0 {
		timeout = DefaultSessionTimeout
	}
	if now == nil {
		now = time.Now
	}
	return &SessionRegistry{
		sessions: make(map[string]time.Time),
		timeout:  timeout,
		now:      now,
	}
}

// CreateSession issues a new random token. Any number of sessions may be
// active at once.
func (r *SessionRegistry) CreateSession() string {
	token := uuid.NewString()

	r.mu.Lock()
	r.sessions[token] = r.now()
	r.mu.Unlock()

	return token
}

// IsValidSession reports whether token was issued and is not older than the
// timeout. An expired token is removed, so it never becomes valid again.
func (r *SessionRegistry) IsValidSession(token string) bool {
	if token == "" {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	createdAt, ok := r.sessions[token]
	if !ok {
		return false
	}
	if r.now().Sub(createdAt) > r.timeout {
		delete(r.sessions, token)
		return false
	}
	return true
}

// InvalidateSession forgets token. Unknown tokens are ignored.
func (r *SessionRegistry) InvalidateSession(token string) {
	r.mu.Lock()
	delete(r.sessions, token)
	r.mu.Unlock()
}

// Len returns the number of tracked sessions, expired ones included until
// they are checked.
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
