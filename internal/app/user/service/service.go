package service

import (
	"context"
	"errors"

	"github.com/Miraines/MoonyAndStarry/tag-service/internal/adapters/transport/http/dto"
	customErrors "github.com/Miraines/MoonyAndStarry/tag-service/internal/domain/errors"
	"github.com/Miraines/MoonyAndStarry/tag-service/internal/domain/model"
	"github.com/Miraines/MoonyAndStarry/tag-service/internal/domain/repo"
	"github.com/go-playground/validator/v10"
)

type Service interface {
	// Get returns the profile with the tags the user created.
	Get(ctx context.Context, uid string) (model.User, error)
	Edit(ctx context.Context, uid string, in dto.EditUserDTO) (model.User, error)
	Delete(ctx context.Context, uid string) error
}

type userService struct {
	users repo.UserRepo
	v     *validator.Validate
}

func New(ur repo.UserRepo, v *validator.Validate) Service {
	return &userService{users: ur, v: v}
}

func (s *userService) Get(ctx context.Context, uid string) (model.User, error) {
	u, err := s.users.GetUserWithTags(ctx, uid)
	if err != nil {
		return model.User{}, mapRepoErr(err, "GetUserWithTags")
	}
	return u, nil
}

func (s *userService) Edit(ctx context.Context, uid string, in dto.EditUserDTO) (model.User, error) {
	if err := s.v.Struct(in); err != nil {
		return model.User{}, customErrors.NewInvalidArgument(err.Error())
	}

	if in.Email == nil && in.Nickname == nil {
		return s.Get(ctx, uid)
	}

	if _, err := s.users.UpdateUser(ctx, uid, repo.UserChanges{Email: in.Email, Nickname: in.Nickname}); err != nil {
		if errors.Is(err, customErrors.ErrAlreadyExists) {
			return model.User{}, customErrors.NewAlreadyExists("nickname or email already exist")
		}
		return model.User{}, mapRepoErr(err, "UpdateUser")
	}
	return s.Get(ctx, uid)
}

func (s *userService) Delete(ctx context.Context, uid string) error {
	if err := s.users.DeleteUser(ctx, uid); err != nil {
		return mapRepoErr(err, "DeleteUser")
	}
	return nil
}

func mapRepoErr(err error, op string) error {
	if errors.Is(err, customErrors.ErrNotFound) {
		return customErrors.ErrUserNotFound
	}
	return customErrors.WrapInternal(err, op)
}
