package repo

import (
	"context"
	"time"
)

// TokenRepo tracks refresh tokens that may still be exchanged.
type TokenRepo interface {
	Register(ctx context.Context, token string, expiresAt time.Time) error

	// Redeem removes the token and reports whether it was present.
	// Two concurrent calls for the same token never both return true.
	Redeem(ctx context.Context, token string) (bool, error)
}
