package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "refresh:"

// RedisTokenRepo keeps live refresh tokens as expiring keys. Tokens are
// stored by digest so a dump of the keyspace cannot be replayed.
type RedisTokenRepo struct {
	client redis.UniversalClient
}

func NewRedisTokenRepo(client redis.UniversalClient) *RedisTokenRepo {
	return &RedisTokenRepo{
		client: client,
	}
}

func (r *RedisTokenRepo) Register(ctx context.Context, token string, expiresAt time.Time) error {
	return r.client.Set(ctx, key(token), "1", safeTTL(expiresAt)).Err()
}

// Redeem relies on GETDEL so only one caller ever sees the key.
func (r *RedisTokenRepo) Redeem(ctx context.Context, token string) (bool, error) {
	_, err := r.client.GetDel(ctx, key(token)).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return false, nil
	case err != nil:
		return false, err
	default:
		return true, nil
	}
}

func (r *RedisTokenRepo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return keyPrefix + hex.EncodeToString(sum[:])
}

func safeTTL(exp time.Time) time.Duration {
	ttl := time.Until(exp)
	if ttl <= 0 {
		// already expired tokens still need a key that disappears
		return time.Second
	}
	return ttl
}
