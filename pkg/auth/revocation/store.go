// Package revocation tracks token ids (jti) that have been logged out before
// their JWT expiry. Entries only need to live as long as the longest token
// TTL, so every store takes a per-entry TTL.
package revocation

import (
	"context"
	"time"
)

// Store is the denylist consulted on every authenticated request.
type Store interface {
	// Revoke marks the token id as unusable for at least ttl.
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	// IsRevoked reports whether the token id has been revoked.
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
