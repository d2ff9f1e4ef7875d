package persistence

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gayathrinuthana/portfolio-api/internal/application/service"
	"github.com/gayathrinuthana/portfolio-api/pkg/apperror"
)

const tokenDenylistPrefix = "auth:revoked:"

// redisTokenDenylist keeps revoked token ids in Redis until the token's own
// expiry, after which the key lapses on its own.
type redisTokenDenylist struct {
	rdb *redis.Client
}

func NewRedisTokenDenylist(rdb *redis.Client) service.TokenStore {
	return &redisTokenDenylist{rdb: rdb}
}

func (s *redisTokenDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		// Token already expired, nothing to deny.
		return nil
	}
	if err := s.rdb.Set(ctx, tokenDenylistPrefix+tokenID, 1, ttl).Err(); err != nil {
		return apperror.NewInternal("failed to revoke token", err)
	}
	return nil
}

func (s *redisTokenDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.rdb.Exists(ctx, tokenDenylistPrefix+tokenID).Result()
	if err != nil {
		return false, apperror.NewInternal("failed to check token revocation", err)
	}
	return n > 0, nil
}
