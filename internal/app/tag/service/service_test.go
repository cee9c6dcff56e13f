package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Miraines/MoonyAndStarry/tag-service/internal/adapters/transport/http/dto"
	"github.com/Miraines/MoonyAndStarry/tag-service/internal/app/tag/service"
	customErrors "github.com/Miraines/MoonyAndStarry/tag-service/internal/domain/errors"
	"github.com/Miraines/MoonyAndStarry/tag-service/internal/domain/model"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

/* ── stubs ── */

type tagRepoStub struct {
	tags     map[int64]model.Tag
	nextID   int64
	lastPage model.Page
	lastSort model.TagOrder
	err      error
}

func newStub() *tagRepoStub {
	return &tagRepoStub{tags: map[int64]model.Tag{}}
}

func (s *tagRepoStub) insert(t model.Tag) (model.Tag, error) {
	for _, existing := range s.tags {
		if existing.CreatorID == t.CreatorID && existing.Name == t.Name {
			return model.Tag{}, customErrors.ErrAlreadyExists
		}
	}
	s.nextID++
	t.ID = s.nextID
	s.tags[t.ID] = t
	return t, nil
}

func (s *tagRepoStub) CreateTag(_ context.Context, t model.Tag) (model.Tag, error) {
	if s.err != nil {
		return model.Tag{}, s.err
	}
	return s.insert(t)
}

func (s *tagRepoStub) CreateTags(_ context.Context, tags []model.Tag) ([]model.Tag, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]model.Tag, 0, len(tags))
	for _, t := range tags {
		created, err := s.insert(t)
		if err != nil {
			return nil, err
		}
		out = append(out, created)
	}
	return out, nil
}

func (s *tagRepoStub) GetTag(_ context.Context, id int64) (model.Tag, error) {
	t, ok := s.tags[id]
	if !ok {
		return model.Tag{}, customErrors.ErrNotFound
	}
	return t, nil
}

func (s *tagRepoStub) ListTags(_ context.Context, page model.Page, order model.TagOrder) ([]model.Tag, error) {
	s.lastPage, s.lastSort = page, order
	if s.err != nil {
		return nil, s.err
	}
	return []model.Tag{}, nil
}

func (s *tagRepoStub) UpdateOwnedTag(_ context.Context, id int64, ownerID, name string, sortOrder int) (model.Tag, error) {
	t, ok := s.tags[id]
	switch {
	case !ok:
		return model.Tag{}, customErrors.ErrNotFound
	case t.CreatorID != ownerID:
		return model.Tag{}, customErrors.ErrForbidden
	}
	t.Name, t.SortOrder = name, sortOrder
	s.tags[id] = t
	return t, nil
}

func (s *tagRepoStub) DeleteOwnedTag(_ context.Context, id int64, ownerID string) error {
	t, ok := s.tags[id]
	switch {
	case !ok:
		return customErrors.ErrNotFound
	case t.CreatorID != ownerID:
		return customErrors.ErrForbidden
	}
	delete(s.tags, id)
	return nil
}

func intPtr(v int) *int { return &v }

func TestCreate(t *testing.T) {
	svc := service.New(newStub(), validator.New())
	ctx := context.Background()

	tag, err := svc.Create(ctx, "u1", dto.CreateTagDTO{Name: "go", SortOrder: intPtr(4)})
	require.NoError(t, err)
	require.Equal(t, "u1", tag.CreatorID)
	require.Equal(t, 4, tag.SortOrder)

	tag, err = svc.Create(ctx, "u1", dto.CreateTagDTO{Name: "rust"})
	require.NoError(t, err)
	require.Zero(t, tag.SortOrder)

	_, err = svc.Create(ctx, "u1", dto.CreateTagDTO{Name: "go"})
	require.True(t, customErrors.IsInvalidArgument(err))

	_, err = svc.Create(ctx, "u1", dto.CreateTagDTO{})
	require.True(t, customErrors.IsInvalidArgument(err))

	_, err = svc.Create(ctx, "u1", dto.CreateTagDTO{Name: strings.Repeat("x", 129)})
	require.True(t, customErrors.IsInvalidArgument(err))
}

func TestCreate_RepoFailures(t *testing.T) {
	stub := newStub()
	svc := service.New(stub, validator.New())

	stub.err = errors.New("db down")
	_, err := svc.Create(context.Background(), "u1", dto.CreateTagDTO{Name: "go"})
	require.True(t, customErrors.IsInternal(err))

	stub.err = customErrors.ErrUserNotFound
	_, err = svc.Create(context.Background(), "u1", dto.CreateTagDTO{Name: "go"})
	require.ErrorIs(t, err, customErrors.ErrUserNotFound)
}

func TestCreateMany(t *testing.T) {
	stub := newStub()
	svc := service.New(stub, validator.New())
	ctx := context.Background()

	tags, err := svc.CreateMany(ctx, "u1", []dto.CreateTagDTO{{Name: "a"}, {Name: "b", SortOrder: intPtr(1)}})
	require.NoError(t, err)
	require.Len(t, tags, 2)
	require.NotEqual(t, tags[0].ID, tags[1].ID)

	_, err = svc.CreateMany(ctx, "u1", nil)
	require.True(t, customErrors.IsInvalidArgument(err))

	_, err = svc.CreateMany(ctx, "u1", []dto.CreateTagDTO{{Name: "ok"}, {Name: ""}})
	require.True(t, customErrors.IsInvalidArgument(err))
	require.Contains(t, err.Error(), "tag[1]")

	tooMany := make([]dto.CreateTagDTO, service.MaxBatch+1)
	for i := range tooMany {
		tooMany[i].Name = strings.Repeat("n", i%10+1)
	}
	_, err = svc.CreateMany(ctx, "u1", tooMany)
	require.True(t, customErrors.IsInvalidArgument(err))

	_, err = svc.CreateMany(ctx, "u1", []dto.CreateTagDTO{{Name: "a"}})
	require.True(t, customErrors.IsInvalidArgument(err))
}

func TestList(t *testing.T) {
	stub := newStub()
	svc := service.New(stub, validator.New())
	ctx := context.Background()

	_, page, err := svc.List(ctx, model.Page{Offset: 5, Length: 500}, "name")
	require.NoError(t, err)
	require.Equal(t, model.Page{Offset: 5, Length: service.MaxLength}, page)
	require.Equal(t, page, stub.lastPage)
	require.Equal(t, model.TagOrderName, stub.lastSort)

	_, _, err = svc.List(ctx, model.Page{Offset: 0, Length: 10}, "password")
	require.NoError(t, err)
	require.Equal(t, model.TagOrderID, stub.lastSort)

	_, _, err = svc.List(ctx, model.Page{Offset: -1, Length: 10}, "")
	require.True(t, customErrors.IsInvalidArgument(err))

	_, _, err = svc.List(ctx, model.Page{Offset: 0, Length: 0}, "")
	require.True(t, customErrors.IsInvalidArgument(err))

	stub.err = errors.New("db down")
	_, _, err = svc.List(ctx, model.Page{Length: 1}, "")
	require.True(t, customErrors.IsInternal(err))
}

func TestGetEditDelete(t *testing.T) {
	svc := service.New(newStub(), validator.New())
	ctx := context.Background()

	tag, err := svc.Create(ctx, "owner", dto.CreateTagDTO{Name: "go", SortOrder: intPtr(3)})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "owner", dto.CreateTagDTO{Name: "taken"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, tag.ID)
	require.NoError(t, err)
	require.Equal(t, "go", got.Name)

	_, err = svc.Get(ctx, 404)
	require.True(t, customErrors.IsNotFound(err))
	require.Contains(t, err.Error(), "Tag(id=404)")

	_, err = svc.Edit(ctx, "intruder", tag.ID, dto.EditTagDTO{Name: "mine"})
	require.True(t, customErrors.IsForbidden(err))

	_, err = svc.Edit(ctx, "owner", 404, dto.EditTagDTO{Name: "x"})
	require.True(t, customErrors.IsNotFound(err))

	_, err = svc.Edit(ctx, "owner", tag.ID, dto.EditTagDTO{Name: ""})
	require.True(t, customErrors.IsInvalidArgument(err))

	edited, err := svc.Edit(ctx, "owner", tag.ID, dto.EditTagDTO{Name: "golang"})
	require.NoError(t, err)
	require.Equal(t, "golang", edited.Name)
	require.Zero(t, edited.SortOrder, "omitted sortOrder resets to zero")

	require.True(t, customErrors.IsForbidden(svc.Delete(ctx, "intruder", tag.ID)))
	require.NoError(t, svc.Delete(ctx, "owner", tag.ID))
	require.True(t, customErrors.IsNotFound(svc.Delete(ctx, "owner", tag.ID)))
}
