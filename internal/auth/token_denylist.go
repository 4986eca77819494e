package auth

import (
	"context"
	"time"

	"taskhub/internal/cache"
)

const denylistKeyPrefix = "denylist:access_token:"

// TokenDenylist records access tokens revoked by logout until their natural
// expiry. Decoded tokens found here are rejected even though their signature
// and expiration still check out.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	// IsRevoked is fail-safe by contract: implementations answer "not
	// revoked" when the backing store is unreachable rather than erroring.
	IsRevoked(ctx context.Context, tokenID string) bool
}

// RedisDenylist stores revoked token IDs in redis.
type RedisDenylist struct {
	cache *cache.Client
}

var _ TokenDenylist = (*RedisDenylist)(nil)

// NewRedisDenylist creates a redis-backed token denylist.
func NewRedisDenylist(cache *cache.Client) *RedisDenylist {
	return &RedisDenylist{cache: cache}
}

// Revoke marks a token ID as revoked for the remainder of its lifetime.
func (d *RedisDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		// already expired, nothing to record
		return nil
	}
	return d.cache.Set(ctx, denylistKeyPrefix+tokenID, []byte("1"), ttl)
}

// IsRevoked reports whether a token ID has been revoked. Redis outages
// behave like "not revoked", matching the fail-safe cache client.
func (d *RedisDenylist) IsRevoked(ctx context.Context, tokenID string) bool {
	data, err := d.cache.Get(ctx, denylistKeyPrefix+tokenID)
	if err != nil {
		return false
	}
	return data != nil
}
