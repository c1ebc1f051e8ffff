package revocation

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-process denylist used when Redis is not configured. Revoked
// ids are dropped lazily once their TTL passes.
type Memory struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

// NewMemory returns an empty in-process denylist.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Revoke marks the token id as unusable for at least ttl.
func (m *Memory) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[jti] = m.now().Add(ttl)
	return nil
}

// IsRevoked reports whether the token id has been revoked.
func (m *Memory) IsRevoked(_ context.Context, jti string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	expiry, ok := m.entries[jti]
	if !ok {
		return false, nil
	}
	if m.now().After(expiry) {
		delete(m.entries, jti)
		return false, nil
	}
	return true, nil
}
