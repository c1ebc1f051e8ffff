package revocation

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/luckbank/luckbank-backend/pkg/redis"
)

// Redis is a shared denylist backed by the Redis cache, so revocations apply
// across all running instances.
type Redis struct {
	client *redis.Client
}

// NewRedis wraps the shared Redis client as a denylist.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// Revoke marks the token id as unusable for at least ttl.
func (r *Redis) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	return r.client.Set(ctx, r.client.DenylistKey(jti), "revoked", ttl)
}

// IsRevoked reports whether the token id has been revoked.
func (r *Redis) IsRevoked(ctx context.Context, jti string) (bool, error) {
	_, err := r.client.Get(ctx, r.client.DenylistKey(jti))
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
