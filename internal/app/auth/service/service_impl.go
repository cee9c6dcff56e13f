package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Miraines/MoonyAndStarry/tag-service/internal/adapters/transport/http/dto"
	"github.com/Miraines/MoonyAndStarry/tag-service/internal/app/auth/password"
	customErrors "github.com/Miraines/MoonyAndStarry/tag-service/internal/domain/errors"
	"github.com/Miraines/MoonyAndStarry/tag-service/internal/domain/jwt"
	"github.com/Miraines/MoonyAndStarry/tag-service/internal/domain/model"
	"github.com/Miraines/MoonyAndStarry/tag-service/internal/domain/repo"
	"github.com/Miraines/MoonyAndStarry/tag-service/internal/infra/config"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type authService struct {
	userRepo  repo.UserRepo
	tokenRepo repo.TokenRepo
	jwtUtil   jwt.JWTUtil
	hasher    password.Hasher
	cfg       *config.Config
	v         *validator.Validate
}

type Service interface {
	Signup(context.Context, dto.SignupDTO) (model.TokenPair, error)
	Login(context.Context, dto.LoginDTO) (model.TokenPair, error)
	Refresh(context.Context, dto.RefreshDTO) (model.TokenPair, error)
	// Authenticate resolves the owner of an access token against the store.
	Authenticate(ctx context.Context, accessToken string) (model.User, error)
}

func New(
	ur repo.UserRepo,
	tr repo.TokenRepo,
	jm jwt.JWTUtil,
	h password.Hasher,
	cfg *config.Config,
	v *validator.Validate,
) Service {
	return &authService{
		userRepo: ur, tokenRepo: tr, jwtUtil: jm, hasher: h, cfg: cfg, v: v,
	}
}

func (a *authService) Signup(ctx context.Context, in dto.SignupDTO) (model.TokenPair, error) {
	if err := a.v.Struct(in); err != nil {
		return model.TokenPair{}, customErrors.NewInvalidArgument(err.Error())
	}

	passwordHash, err := a.hasher.Hash(in.Password)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "Signup")
	}

	user := model.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		Nickname:     in.Nickname,
		PasswordHash: passwordHash,
	}
	if _, err = a.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, customErrors.ErrAlreadyExists) {
			return model.TokenPair{}, customErrors.NewAlreadyExists("nickname or email already exist")
		}
		return model.TokenPair{}, customErrors.WrapInternal(err, "Signup")
	}

	return a.issueTokens(ctx, user)
}

func (a *authService) Login(ctx context.Context, in dto.LoginDTO) (model.TokenPair, error) {
	if err := a.v.Struct(in); err != nil {
		return model.TokenPair{}, customErrors.NewInvalidArgument(err.Error())
	}

	var (
		user model.User
		err  error
	)
	switch {
	case in.Email != "":
		user, err = a.userRepo.GetUserByEmail(ctx, in.Email)
	case in.Nickname != "":
		user, err = a.userRepo.GetUserByNickname(ctx, in.Nickname)
	default:
		return model.TokenPair{}, customErrors.NewInvalidArgument("nickname or email must be provided")
	}
	// unknown user and wrong password must be indistinguishable
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return model.TokenPair{}, customErrors.ErrInvalidCredentials
	case err != nil:
		return model.TokenPair{}, customErrors.WrapInternal(err, "Login")
	}

	ok, err := a.hasher.Verify(user.PasswordHash, in.Password)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "Login")
	}
	if !ok {
		return model.TokenPair{}, customErrors.ErrInvalidCredentials
	}

	return a.issueTokens(ctx, user)
}

// Refresh consumes the refresh token before anything else; a token that fails to
// decode after redemption is reported exactly like one that was never issued.
func (a *authService) Refresh(ctx context.Context, in dto.RefreshDTO) (model.TokenPair, error) {
	raw := strings.TrimSpace(in.RefreshToken)
	if raw == "" {
		return model.TokenPair{}, customErrors.ErrInvalidToken
	}

	redeemed, err := a.tokenRepo.Redeem(ctx, raw)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "Refresh")
	}
	if !redeemed {
		return model.TokenPair{}, customErrors.ErrInvalidToken
	}

	claims, err := a.jwtUtil.Decode(raw)
	if err != nil || claims.Type != model.TokenClassRefresh {
		return model.TokenPair{}, customErrors.ErrInvalidToken
	}

	user, err := a.userRepo.GetUserByID(ctx, claims.Subject)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return model.TokenPair{}, customErrors.ErrUserNotFound
	case err != nil:
		return model.TokenPair{}, customErrors.WrapInternal(err, "Refresh")
	}

	return a.issueTokens(ctx, user)
}

func (a *authService) Authenticate(ctx context.Context, accessToken string) (model.User, error) {
	if accessToken == "" {
		return model.User{}, customErrors.ErrUnauthenticated
	}

	claims, err := a.jwtUtil.Decode(accessToken)
	if err != nil || claims.Type != model.TokenClassAccess {
		return model.User{}, customErrors.ErrUnauthenticated
	}

	user, err := a.userRepo.GetUserByID(ctx, claims.Subject)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return model.User{}, customErrors.ErrUnauthenticated
	case err != nil:
		return model.User{}, customErrors.WrapInternal(err, "Authenticate")
	}

	user.PasswordHash = ""
	return user, nil
}

func (a *authService) issueTokens(ctx context.Context, user model.User) (model.TokenPair, error) {
	at, atExp, err := a.jwtUtil.Issue(user.ID, user.Email, model.TokenClassAccess)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "IssueAccessToken")
	}
	rt, rtExp, err := a.jwtUtil.Issue(user.ID, user.Email, model.TokenClassRefresh)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "IssueRefreshToken")
	}
	if err = a.tokenRepo.Register(ctx, rt, rtExp); err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "RegisterRefresh")
	}

	now := time.Now()
	return model.TokenPair{
		AccessToken:  at,
		RefreshToken: rt,
		ExpiresIn:    a.expiresIn(),
		AccessTTL:    atExp.Sub(now),
		RefreshTTL:   rtExp.Sub(now),
		UserID:       user.ID,
	}, nil
}

func (a *authService) expiresIn() string {
	if a.cfg != nil && a.cfg.AccessTokenTTLRaw != "" {
		return a.cfg.AccessTokenTTLRaw
	}
	return a.jwtUtil.TTL(model.TokenClassAccess).String()
}
