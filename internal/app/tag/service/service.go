package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Miraines/MoonyAndStarry/tag-service/internal/adapters/transport/http/dto"
	customErrors "github.com/Miraines/MoonyAndStarry/tag-service/internal/domain/errors"
	"github.com/Miraines/MoonyAndStarry/tag-service/internal/domain/model"
	"github.com/Miraines/MoonyAndStarry/tag-service/internal/domain/repo"
	"github.com/go-playground/validator/v10"
)

const (
	DefaultLength = 10
	MaxLength     = 100
	MaxBatch      = 100
)

type Service interface {
	List(ctx context.Context, page model.Page, sortBy string) ([]model.Tag, model.Page, error)
	Get(ctx context.Context, id int64) (model.Tag, error)
	Create(ctx context.Context, uid string, in dto.CreateTagDTO) (model.Tag, error)
	CreateMany(ctx context.Context, uid string, in []dto.CreateTagDTO) ([]model.Tag, error)
	Edit(ctx context.Context, uid string, id int64, in dto.EditTagDTO) (model.Tag, error)
	Delete(ctx context.Context, uid string, id int64) error
}

type tagService struct {
	tags repo.TagRepo
	v    *validator.Validate
}

func New(tr repo.TagRepo, v *validator.Validate) Service {
	return &tagService{tags: tr, v: v}
}

// List returns the effective page, with length clamped to MaxLength.
func (s *tagService) List(ctx context.Context, page model.Page, sortBy string) ([]model.Tag, model.Page, error) {
	if page.Offset < 0 {
		return nil, page, customErrors.NewInvalidArgument("offset must not be negative")
	}
	if page.Length <= 0 {
		return nil, page, customErrors.NewInvalidArgument("length must be positive")
	}
	if page.Length > MaxLength {
		page.Length = MaxLength
	}

	tags, err := s.tags.ListTags(ctx, page, model.ParseTagOrder(sortBy))
	if err != nil {
		return nil, page, customErrors.WrapInternal(err, "ListTags")
	}
	return tags, page, nil
}

func (s *tagService) Get(ctx context.Context, id int64) (model.Tag, error) {
	t, err := s.tags.GetTag(ctx, id)
	if err != nil {
		return model.Tag{}, mapRepoErr(err, id, "GetTag")
	}
	return t, nil
}

func (s *tagService) Create(ctx context.Context, uid string, in dto.CreateTagDTO) (model.Tag, error) {
	if err := s.v.Struct(in); err != nil {
		return model.Tag{}, customErrors.NewInvalidArgument(err.Error())
	}

	t, err := s.tags.CreateTag(ctx, newTag(uid, in))
	if err != nil {
		return model.Tag{}, mapCreateErr(err)
	}
	return t, nil
}

func (s *tagService) CreateMany(ctx context.Context, uid string, in []dto.CreateTagDTO) ([]model.Tag, error) {
	if len(in) == 0 {
		return nil, customErrors.NewInvalidArgument("at least one tag is required")
	}
	if len(in) > MaxBatch {
		return nil, customErrors.NewInvalidArgument(fmt.Sprintf("at most %d tags per request", MaxBatch))
	}

	tags := make([]model.Tag, 0, len(in))
	for i, item := range in {
		if err := s.v.Struct(item); err != nil {
			return nil, customErrors.NewInvalidArgument(fmt.Sprintf("tag[%d]: %v", i, err))
		}
		tags = append(tags, newTag(uid, item))
	}

	created, err := s.tags.CreateTags(ctx, tags)
	if err != nil {
		return nil, mapCreateErr(err)
	}
	return created, nil
}

func (s *tagService) Edit(ctx context.Context, uid string, id int64, in dto.EditTagDTO) (model.Tag, error) {
	if err := s.v.Struct(in); err != nil {
		return model.Tag{}, customErrors.NewInvalidArgument(err.Error())
	}

	t, err := s.tags.UpdateOwnedTag(ctx, id, uid, in.Name, sortOrder(in.SortOrder))
	if err != nil {
		if errors.Is(err, customErrors.ErrAlreadyExists) {
			return model.Tag{}, customErrors.NewInvalidArgument("tag name already exists")
		}
		return model.Tag{}, mapRepoErr(err, id, "UpdateOwnedTag")
	}
	return t, nil
}

func (s *tagService) Delete(ctx context.Context, uid string, id int64) error {
	if err := s.tags.DeleteOwnedTag(ctx, id, uid); err != nil {
		return mapRepoErr(err, id, "DeleteOwnedTag")
	}
	return nil
}

func newTag(uid string, in dto.CreateTagDTO) model.Tag {
	return model.Tag{Name: in.Name, SortOrder: sortOrder(in.SortOrder), CreatorID: uid}
}

func sortOrder(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func mapCreateErr(err error) error {
	switch {
	case errors.Is(err, customErrors.ErrAlreadyExists):
		return customErrors.NewInvalidArgument("tag name already exists")
	case errors.Is(err, customErrors.ErrUserNotFound):
		// creator vanished between authentication and insert
		return customErrors.ErrUserNotFound
	default:
		return customErrors.WrapInternal(err, "CreateTag")
	}
}

func mapRepoErr(err error, id int64, op string) error {
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return customErrors.NewNotFound(fmt.Sprintf("Tag(id=%d) does not exist", id))
	case errors.Is(err, customErrors.ErrForbidden):
		return customErrors.NewForbidden(fmt.Sprintf("you don't own Tag(id=%d)", id))
	default:
		return customErrors.WrapInternal(err, op)
	}
}
