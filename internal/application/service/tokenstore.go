package service

import (
	"context"
	"time"
)

// TokenStore is the revocation list backing logout. Revoked token ids are
// kept until their natural expiry; a missing id means the token is live.
type TokenStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
