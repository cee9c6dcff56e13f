package postgres

import (
	"context"
	"errors"

	customErrors "github.com/Miraines/MoonyAndStarry/tag-service/internal/domain/errors"
	"github.com/Miraines/MoonyAndStarry/tag-service/internal/domain/model"
	"github.com/Miraines/MoonyAndStarry/tag-service/internal/domain/repo"
	"gorm.io/gorm"
)

type PostgresUserRepo struct {
	db *gorm.DB
}

func NewPostgresUserRepo(db *gorm.DB) *PostgresUserRepo {
	return &PostgresUserRepo{db: db}
}

func (p *PostgresUserRepo) CreateUser(ctx context.Context, user model.User) (string, error) {
	res := p.db.WithContext(ctx).Omit("Tags").Create(&user)
	if err := res.Error; err != nil {
		if isUniqueViolation(err) {
			return "", customErrors.ErrAlreadyExists
		}
		return "", customErrors.WrapInternal(err, "CreateUser")
	}
	return user.ID, nil
}

func (p *PostgresUserRepo) getBy(ctx context.Context, op, column string, value any) (model.User, error) {
	var u model.User
	res := p.db.WithContext(ctx).Where(column+" = ?", value).First(&u)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.User{}, customErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.User{}, customErrors.WrapInternal(err, op)
	}
	return u, nil
}

func (p *PostgresUserRepo) GetUserByID(ctx context.Context, id string) (model.User, error) {
	return p.getBy(ctx, "GetUserByID", "id", id)
}

func (p *PostgresUserRepo) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	return p.getBy(ctx, "GetUserByEmail", "email", email)
}

func (p *PostgresUserRepo) GetUserByNickname(ctx context.Context, nickname string) (model.User, error) {
	return p.getBy(ctx, "GetUserByNickname", "nickname", nickname)
}

func (p *PostgresUserRepo) GetUserWithTags(ctx context.Context, id string) (model.User, error) {
	var u model.User
	res := p.db.WithContext(ctx).
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("id = ?", id).
		First(&u)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.User{}, customErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.User{}, customErrors.WrapInternal(err, "GetUserWithTags")
	}
	return u, nil
}

func (p *PostgresUserRepo) UpdateUser(ctx context.Context, id string, changes repo.UserChanges) (model.User, error) {
	fields := map[string]any{}
	if changes.Email != nil {
		fields["email"] = *changes.Email
	}
	if changes.Nickname != nil {
		fields["nickname"] = *changes.Nickname
	}
	if len(fields) == 0 {
		return p.GetUserByID(ctx, id)
	}

	res := p.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(fields)
	if err := res.Error; err != nil {
		if isUniqueViolation(err) {
			return model.User{}, customErrors.ErrAlreadyExists
		}
		return model.User{}, customErrors.WrapInternal(err, "UpdateUser")
	}
	if res.RowsAffected == 0 {
		return model.User{}, customErrors.ErrNotFound
	}

	return p.GetUserByID(ctx, id)
}

// DeleteUser removes the user together with every tag they created.
func (p *PostgresUserRepo) DeleteUser(ctx context.Context, id string) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("creator_id = ?", id).Delete(&model.Tag{}).Error; err != nil {
			return customErrors.WrapInternal(err, "DeleteUser")
		}
		res := tx.Where("id = ?", id).Delete(&model.User{})
		if err := res.Error; err != nil {
			return customErrors.WrapInternal(err, "DeleteUser")
		}
		if res.RowsAffected == 0 {
			return customErrors.ErrNotFound
		}
		return nil
	})
}
