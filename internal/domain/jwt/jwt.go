package jwt

import (
	"time"

	"github.com/Miraines/MoonyAndStarry/tag-service/internal/domain/model"
	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	jwt.RegisteredClaims
	Email string           `json:"email"`
	Type  model.TokenClass `json:"type"`
}

type JWTUtil interface {
	Issue(subject, email string, class model.TokenClass) (token string, exp time.Time, err error)
	// Decode fails with ErrInvalidToken on a bad signature, expiry or malformed input.
	Decode(token string) (Claims, error)
	TTL(class model.TokenClass) time.Duration
}
