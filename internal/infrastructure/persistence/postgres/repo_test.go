package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"z-doc-ai-api/internal/domain/entity"
	"z-doc-ai-api/internal/domain/repository"
	"z-doc-ai-api/internal/infrastructure/persistence/postgres/pgtest"
)

func seedProject(t *testing.T, s *pgtest.Stores, owner string, titles ...string) (*entity.Project, []*entity.Section) {
	t.Helper()
	ctx := context.Background()

	p := entity.NewProject(owner, "Q3 Report", "", entity.ContainerWord)
	require.NoError(t, s.Projects.Create(ctx, p))

	var sections []*entity.Section
	for i, title := range titles {
		sections = append(sections, entity.NewSection(p.ID, title, i))
	}
	require.NoError(t, s.Sections.CreateBatch(ctx, sections))
	return p, sections
}

func TestUserRepository(t *testing.T) {
	s := pgtest.Open(t)
	ctx := context.Background()

	u := entity.NewUser("alice")
	require.NoError(t, u.SetPassword("secret1"))
	require.NoError(t, s.Users.Create(ctx, u))

	got, err := s.Users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)
	assert.True(t, got.CheckPassword("secret1"))

	exists, err := s.Users.ExistsByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, exists)

	missing, err := s.Users.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, s.Users.UpdateLastLogin(ctx, u.ID))
	got, err = s.Users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.LastLoginAt)
}

func TestProjectRepository_OwnerScope(t *testing.T) {
	s := pgtest.Open(t)
	ctx := context.Background()
	p, _ := seedProject(t, s, "owner-1")

	got, err := s.Projects.GetByOwner(ctx, "owner-1", p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entity.ContainerWord, got.ContainerType)

	other, err := s.Projects.GetByOwner(ctx, "owner-2", p.ID)
	require.NoError(t, err)
	assert.Nil(t, other)

	page, err := s.Projects.ListByOwner(ctx, "owner-1", repository.NewPagination(1, 10))
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)
}

func TestProjectRepository_UpdateKeepsContainerType(t *testing.T) {
	s := pgtest.Open(t)
	ctx := context.Background()
	p, _ := seedProject(t, s, "owner-1")

	p.Title = "Q4 Report"
	p.Topic = "finance"
	p.ContainerType = entity.ContainerSlide
	require.NoError(t, s.Projects.Update(ctx, p))

	got, err := s.Projects.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Q4 Report", got.Title)
	assert.Equal(t, "finance", got.Topic)
	assert.Equal(t, entity.ContainerWord, got.ContainerType)
}

func TestSectionRepository_OrderAndOwner(t *testing.T) {
	s := pgtest.Open(t)
	ctx := context.Background()
	p, secs := seedProject(t, s, "owner-1", "A", "B", "C")

	// 调整排序：C 放到最前
	secs[2].OrderIndex = -1
	require.NoError(t, s.Sections.UpdateMeta(ctx, secs[2]))

	list, err := s.Sections.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"C", "A", "B"}, []string{list[0].Title, list[1].Title, list[2].Title})

	next, err := s.Sections.NextOrderIndex(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, next)

	got, err := s.Sections.GetByOwner(ctx, "owner-1", secs[0].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "A", got.Title)

	foreign, err := s.Sections.GetByOwner(ctx, "owner-2", secs[0].ID)
	require.NoError(t, err)
	assert.Nil(t, foreign)

	assert.Error(t, s.Sections.UpdateContent(ctx, "missing", "x"))
}

func TestRefinementEventRepository_Order(t *testing.T) {
	s := pgtest.Open(t)
	ctx := context.Background()
	_, secs := seedProject(t, s, "owner-1", "A")

	first := entity.NewMutationEvent(secs[0].ID, entity.EventKindGeneration, "generate: A", "", "v1")
	second := entity.NewMutationEvent(secs[0].ID, entity.EventKindRefinement, "shorter", "v1", "v2")
	second.CreatedAt = first.CreatedAt
	third := entity.NewFeedbackEvent(secs[0].ID, "v2", entity.FeedbackLike, "nice")

	for _, e := range []*entity.RefinementEvent{first, second, third} {
		require.NoError(t, s.Events.Append(ctx, e))
	}

	events, err := s.Events.ListBySection(ctx, secs[0].ID)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, first.ID, events[0].ID)
	assert.Equal(t, second.ID, events[1].ID)
	assert.Equal(t, third.ID, events[2].ID)
	assert.Equal(t, entity.EventKindGeneration, events[0].Kind())
	assert.Equal(t, entity.EventKindRefinement, events[1].Kind())
	assert.Equal(t, entity.EventKindFeedback, events[2].Kind())
}

func TestSectionRepository_GetForUpdate(t *testing.T) {
	s := pgtest.Open(t)
	ctx := context.Background()
	_, secs := seedProject(t, s, "owner-1", "A")

	err := s.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		got, err := s.Sections.GetForUpdate(ctx, secs[0].ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "A", got.Title)

		missing, err := s.Sections.GetForUpdate(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, missing)
		return nil
	})
	require.NoError(t, err)
}

func TestSectionRepository_DeleteRemovesEvents(t *testing.T) {
	s := pgtest.Open(t)
	ctx := context.Background()
	_, secs := seedProject(t, s, "owner-1", "A", "B")
	for _, sec := range secs {
		require.NoError(t, s.Events.Append(ctx, entity.NewMutationEvent(sec.ID, entity.EventKindEdit, "", "", "v1")))
	}

	require.NoError(t, s.Sections.Delete(ctx, secs[0].ID))

	gone, err := s.Sections.GetByID(ctx, secs[0].ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
	events, err := s.Events.ListBySection(ctx, secs[0].ID)
	require.NoError(t, err)
	assert.Empty(t, events)

	kept, err := s.Events.ListBySection(ctx, secs[1].ID)
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}

func TestProjectRepository_DeleteCascade(t *testing.T) {
	s := pgtest.Open(t)
	ctx := context.Background()
	p, secs := seedProject(t, s, "owner-1", "A", "B")
	keep, keepSecs := seedProject(t, s, "owner-1", "K")

	for _, sec := range append(secs, keepSecs...) {
		require.NoError(t, s.Events.Append(ctx, entity.NewMutationEvent(sec.ID, entity.EventKindGeneration, "generate: x", "", "v1")))
	}

	require.NoError(t, s.Projects.DeleteCascade(ctx, p.ID))

	gone, err := s.Projects.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	list, err := s.Sections.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	events, err := s.Events.ListBySection(ctx, secs[0].ID)
	require.NoError(t, err)
	assert.Empty(t, events)

	kept, err := s.Events.ListBySection(ctx, keepSecs[0].ID)
	require.NoError(t, err)
	assert.Len(t, kept, 1)
	still, err := s.Projects.GetByID(ctx, keep.ID)
	require.NoError(t, err)
	assert.NotNil(t, still)
}

func TestTxManager_RollbackOnError(t *testing.T) {
	s := pgtest.Open(t)
	ctx := context.Background()
	_, secs := seedProject(t, s, "owner-1", "A")

	boom := errors.New("boom")
	err := s.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		require.NoError(t, s.Sections.UpdateContent(ctx, secs[0].ID, "written"))
		require.NoError(t, s.Events.Append(ctx, entity.NewMutationEvent(secs[0].ID, entity.EventKindEdit, "", "", "written")))
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := s.Sections.GetByID(ctx, secs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "", got.Content)

	events, err := s.Events.ListBySection(ctx, secs[0].ID)
	require.NoError(t, err)
	assert.Empty(t, events)
}
