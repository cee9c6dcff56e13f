// Package memory holds a process-local refresh token registry for
// single-instance deployments and tests.
package memory

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const DefaultCapacity = 100_000

type TokenRepo struct {
	cache *expirable.LRU[string, time.Time]
}

// NewTokenRepo keeps at most size tokens; the oldest ones are evicted
// first. Entries also expire after ttl, which should match the refresh
// token lifetime.
func NewTokenRepo(size int, ttl time.Duration) *TokenRepo {
	if size <= 0 {
		size = DefaultCapacity
	}
	return &TokenRepo{cache: expirable.NewLRU[string, time.Time](size, nil, ttl)}
}

func (r *TokenRepo) Register(_ context.Context, token string, expiresAt time.Time) error {
	r.cache.Add(token, expiresAt)
	return nil
}

func (r *TokenRepo) Redeem(_ context.Context, token string) (bool, error) {
	exp, ok := r.cache.Peek(token)
	if !ok {
		return false, nil
	}
	// Remove is the single point of truth under concurrent redeems.
	if !r.cache.Remove(token) {
		return false, nil
	}
	return time.Now().Before(exp), nil
}

func (r *TokenRepo) Len() int {
	return r.cache.Len()
}
