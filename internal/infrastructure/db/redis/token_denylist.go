package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/psikobank/user-registry/internal/core/ports"
)

const revokedPrefix = "revoked:token:"

// TokenDenylist remembers revoked token ids until the tokens would have
// expired anyway.
type TokenDenylist struct {
	client redis.Cmdable
}

var _ ports.TokenDenylist = (*TokenDenylist)(nil)

func NewTokenDenylist(client redis.Cmdable) *TokenDenylist {
	return &TokenDenylist{client: client}
}

func revokedKey(tokenID string) string { return revokedPrefix + tokenID }

// Revoke stores tokenID with a TTL that ends at expiresAt. Tokens already past
// their expiry are rejected by signature validation and are not stored.
func (d *TokenDenylist) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := d.client.Set(ctx, revokedKey(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (d *TokenDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.client.Exists(ctx, revokedKey(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("check revoked token: %w", err)
	}
	return n > 0, nil
}
