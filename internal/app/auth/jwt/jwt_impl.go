package jwt

import (
	"errors"
	"time"

	customErrors "github.com/Miraines/MoonyAndStarry/tag-service/internal/domain/errors"
	jwt2 "github.com/Miraines/MoonyAndStarry/tag-service/internal/domain/jwt"
	"github.com/Miraines/MoonyAndStarry/tag-service/internal/domain/model"
	"github.com/Miraines/MoonyAndStarry/tag-service/internal/infra/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type JwtUtilImpl struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	issuer     string
	now        func() time.Time
}

func NewJWTUtil(cfg *config.Config) (*JwtUtilImpl, error) {
	if cfg.JWTSecret == "" {
		return nil, customErrors.WrapInternal(errors.New("empty secret"), "NewJWTUtil")
	}
	if cfg.AccessTokenTTL <= 0 || cfg.RefreshTokenTTL <= 0 {
		return nil, customErrors.WrapInternal(errors.New("token ttl must be positive"), "NewJWTUtil")
	}
	return &JwtUtilImpl{
		secret:     []byte(cfg.JWTSecret),
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
		issuer:     cfg.Issuer,
		now:        time.Now,
	}, nil
}

func (j *JwtUtilImpl) TTL(class model.TokenClass) time.Duration {
	if class == model.TokenClassRefresh {
		return j.refreshTTL
	}
	return j.accessTTL
}

func (j *JwtUtilImpl) Issue(subject, email string, class model.TokenClass) (string, time.Time, error) {
	if class != model.TokenClassAccess && class != model.TokenClassRefresh {
		return "", time.Time{}, customErrors.NewInvalidArgument("unknown token class")
	}
	now := j.now()

	claims := jwt2.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.TTL(class))),
			ID:        uuid.NewString(),
		},
		Email: email,
		Type:  class,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", time.Time{}, customErrors.WrapInternal(err, "sign "+string(class)+" token")
	}

	return signed, claims.ExpiresAt.Time, nil
}

func (j *JwtUtilImpl) Decode(raw string) (jwt2.Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	}
	if j.issuer != "" {
		opts = append(opts, jwt.WithIssuer(j.issuer))
	}

	token, err := jwt.ParseWithClaims(raw, &jwt2.Claims{}, func(t *jwt.Token) (interface{}, error) {
		return j.secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		return jwt2.Claims{}, customErrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt2.Claims)
	if !ok {
		return jwt2.Claims{}, customErrors.WrapInternal(errors.New("claims not Claims"), "Decode")
	}
	if claims.Subject == "" {
		return jwt2.Claims{}, customErrors.ErrInvalidToken
	}

	return *claims, nil
}
