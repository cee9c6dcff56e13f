package repo

import (
	"context"

	"github.com/Miraines/MoonyAndStarry/tag-service/internal/domain/model"
)

type TagRepo interface {
	CreateTag(ctx context.Context, t model.Tag) (model.Tag, error)

	// CreateTags inserts all tags atomically and returns them with ids assigned.
	CreateTags(ctx context.Context, tags []model.Tag) ([]model.Tag, error)

	GetTag(ctx context.Context, id int64) (model.Tag, error)

	ListTags(ctx context.Context, page model.Page, order model.TagOrder) ([]model.Tag, error)

	// UpdateOwnedTag updates the tag only if ownerID created it.
	UpdateOwnedTag(ctx context.Context, id int64, ownerID, name string, sortOrder int) (model.Tag, error)

	// DeleteOwnedTag deletes the tag only if ownerID created it.
	DeleteOwnedTag(ctx context.Context, id int64, ownerID string) error
}
