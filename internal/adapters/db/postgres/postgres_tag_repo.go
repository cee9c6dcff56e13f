package postgres

import (
	"context"
	"errors"

	customErrors "github.com/Miraines/MoonyAndStarry/tag-service/internal/domain/errors"
	"github.com/Miraines/MoonyAndStarry/tag-service/internal/domain/model"
	"gorm.io/gorm"
)

type PostgresTagRepo struct {
	db *gorm.DB
}

func NewPostgresTagRepo(db *gorm.DB) *PostgresTagRepo {
	return &PostgresTagRepo{db: db}
}

var tagOrderClause = map[model.TagOrder]string{
	model.TagOrderID:        "id ASC",
	model.TagOrderName:      "name ASC, id ASC",
	model.TagOrderSortOrder: "sort_order ASC, id ASC",
}

func (p *PostgresTagRepo) CreateTag(ctx context.Context, t model.Tag) (model.Tag, error) {
	t.Creator = nil
	if err := p.db.WithContext(ctx).Create(&t).Error; err != nil {
		return model.Tag{}, translateWriteErr(err, "CreateTag")
	}
	return t, nil
}

func (p *PostgresTagRepo) CreateTags(ctx context.Context, tags []model.Tag) ([]model.Tag, error) {
	for i := range tags {
		tags[i].Creator = nil
	}
	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&tags).Error
	})
	if err != nil {
		return nil, translateWriteErr(err, "CreateTags")
	}
	return tags, nil
}

func (p *PostgresTagRepo) GetTag(ctx context.Context, id int64) (model.Tag, error) {
	var t model.Tag
	res := p.db.WithContext(ctx).Preload("Creator").Where("id = ?", id).First(&t)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.Tag{}, customErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.Tag{}, customErrors.WrapInternal(err, "GetTag")
	}
	return t, nil
}

func (p *PostgresTagRepo) ListTags(ctx context.Context, page model.Page, order model.TagOrder) ([]model.Tag, error) {
	clause, ok := tagOrderClause[order]
	if !ok {
		clause = tagOrderClause[model.TagOrderID]
	}

	var tags []model.Tag
	res := p.db.WithContext(ctx).
		Preload("Creator").
		Order(clause).
		Offset(page.Offset).
		Limit(page.Length).
		Find(&tags)
	if err := res.Error; err != nil {
		return nil, customErrors.WrapInternal(err, "ListTags")
	}
	return tags, nil
}

// UpdateOwnedTag folds the ownership check into the UPDATE itself.
func (p *PostgresTagRepo) UpdateOwnedTag(ctx context.Context, id int64, ownerID, name string, sortOrder int) (model.Tag, error) {
	res := p.db.WithContext(ctx).
		Model(&model.Tag{}).
		Where("id = ? AND creator_id = ?", id, ownerID).
		Updates(map[string]any{"name": name, "sort_order": sortOrder})
	if err := res.Error; err != nil {
		return model.Tag{}, translateWriteErr(err, "UpdateOwnedTag")
	}
	if res.RowsAffected == 0 {
		return model.Tag{}, p.missingOrForeign(ctx, id)
	}

	var t model.Tag
	if err := p.db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Tag{}, customErrors.ErrNotFound
		}
		return model.Tag{}, customErrors.WrapInternal(err, "UpdateOwnedTag")
	}
	return t, nil
}

func (p *PostgresTagRepo) DeleteOwnedTag(ctx context.Context, id int64, ownerID string) error {
	res := p.db.WithContext(ctx).Where("id = ? AND creator_id = ?", id, ownerID).Delete(&model.Tag{})
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "DeleteOwnedTag")
	}
	if res.RowsAffected == 0 {
		return p.missingOrForeign(ctx, id)
	}
	return nil
}

// missingOrForeign explains a conditional write that touched no row.
func (p *PostgresTagRepo) missingOrForeign(ctx context.Context, id int64) error {
	var n int64
	if err := p.db.WithContext(ctx).Model(&model.Tag{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return customErrors.WrapInternal(err, "probe tag")
	}
	if n == 0 {
		return customErrors.ErrNotFound
	}
	return customErrors.ErrForbidden
}

func translateWriteErr(err error, op string) error {
	switch {
	case isUniqueViolation(err):
		return customErrors.ErrAlreadyExists
	case isForeignKeyViolation(err):
		return customErrors.ErrUserNotFound
	default:
		return customErrors.WrapInternal(err, op)
	}
}
