package dto

import "github.com/Miraines/MoonyAndStarry/tag-service/internal/domain/model"

type SignupDTO struct {
	Nickname string `json:"nickname" validate:"required,max=64"`
	Email    string `json:"email"    validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=256"`
}

// LoginDTO takes either a nickname or an email; email wins when both are set.
type LoginDTO struct {
	Nickname string `json:"nickname" validate:"omitempty,max=64"`
	Email    string `json:"email"    validate:"omitempty,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshDTO struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type TokenPairDTO struct {
	AccessToken  string `json:"accessToken"`
	ExpiresIn    string `json:"expiresIn"`
	RefreshToken string `json:"refreshToken"`
}

type EditUserDTO struct {
	Email    *string `json:"email"    validate:"omitnil,email,max=254"`
	Nickname *string `json:"nickname" validate:"omitnil,min=1,max=64"`
}

type CreateTagDTO struct {
	Name      string `json:"name"      validate:"required,max=128"`
	SortOrder *int   `json:"sortOrder"`
}

type EditTagDTO struct {
	Name      string `json:"name"      validate:"required,max=128"`
	SortOrder *int   `json:"sortOrder"`
}

type UserDTO struct {
	UID      string   `json:"uid"`
	Email    string   `json:"email"`
	Nickname string   `json:"nickname"`
	Tags     []TagDTO `json:"tags"`
}

type TagDTO struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	SortOrder int      `json:"sortOrder"`
	Creator   *UserDTO `json:"creator,omitempty"`
}

type PageMeta struct {
	Offset   int `json:"offset"`
	Length   int `json:"length"`
	Quantity int `json:"quantity"`
}

type PageDTO[T any] struct {
	Data []T      `json:"data"`
	Meta PageMeta `json:"meta"`
}

func NewTokenPair(p model.TokenPair) TokenPairDTO {
	return TokenPairDTO{
		AccessToken:  p.AccessToken,
		ExpiresIn:    p.ExpiresIn,
		RefreshToken: p.RefreshToken,
	}
}

// NewUser never copies the password hash.
func NewUser(u model.User) UserDTO {
	out := UserDTO{
		UID:      u.ID,
		Email:    u.Email,
		Nickname: u.Nickname,
		Tags:     make([]TagDTO, 0, len(u.Tags)),
	}
	for _, t := range u.Tags {
		out.Tags = append(out.Tags, NewTag(t))
	}
	return out
}

func NewTag(t model.Tag) TagDTO {
	out := TagDTO{ID: t.ID, Name: t.Name, SortOrder: t.SortOrder}
	if t.Creator != nil {
		c := NewUser(*t.Creator)
		out.Creator = &c
	}
	return out
}

func NewTags(tags []model.Tag) []TagDTO {
	out := make([]TagDTO, 0, len(tags))
	for _, t := range tags {
		out = append(out, NewTag(t))
	}
	return out
}

// NewPage reports the number of returned items as quantity, not the total.
func NewPage[T any](data []T, offset, length int) PageDTO[T] {
	if data == nil {
		data = []T{}
	}
	return PageDTO[T]{
		Data: data,
		Meta: PageMeta{Offset: offset, Length: length, Quantity: len(data)},
	}
}

// ListTagsQuery is bound from the query string; absent values take defaults.
type ListTagsQuery struct {
	Offset *int   `form:"offset"`
	Length *int   `form:"length"`
	SortBy string `form:"sortBy"`
}
