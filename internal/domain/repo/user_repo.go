package repo

import (
	"context"

	"github.com/Miraines/MoonyAndStarry/tag-service/internal/domain/model"
)

// UserChanges holds the optional profile fields of an edit; nil means untouched.
type UserChanges struct {
	Email    *string
	Nickname *string
}

type UserRepo interface {
	CreateUser(ctx context.Context, u model.User) (string, error)

	GetUserByID(ctx context.Context, id string) (model.User, error)

	GetUserByEmail(ctx context.Context, email string) (model.User, error)

	GetUserByNickname(ctx context.Context, nickname string) (model.User, error)

	GetUserWithTags(ctx context.Context, id string) (model.User, error)

	UpdateUser(ctx context.Context, id string, changes UserChanges) (model.User, error)

	DeleteUser(ctx context.Context, id string) error
}
