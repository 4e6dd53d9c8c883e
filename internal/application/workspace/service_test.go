package workspace_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"z-doc-ai-api/internal/application/docgen"
	"z-doc-ai-api/internal/application/ledger"
	"z-doc-ai-api/internal/application/workspace"
	"z-doc-ai-api/internal/config"
	"z-doc-ai-api/internal/domain/entity"
	"z-doc-ai-api/internal/domain/repository"
	"z-doc-ai-api/internal/infrastructure/persistence/postgres/pgtest"
	workflowprompt "z-doc-ai-api/internal/workflow/prompt"
	apperrors "z-doc-ai-api/pkg/errors"
)

const owner = "owner-1"

func newService(t *testing.T, replies ...docgen.ScriptedReply) (*workspace.Service, *pgtest.Stores) {
	t.Helper()
	s := pgtest.Open(t)
	cfg := &config.Config{
		LLM:        config.LLMConfig{RequestTimeout: time.Second},
		Generation: config.GenerationConfig{DefaultOutlineCount: 5, MaxOutlineCount: 20},
	}
	gen := docgen.NewGenerator(docgen.NewScriptedCompleter(replies...), workflowprompt.NewRegistry(), cfg)
	l := ledger.NewLedger(s.Tx, s.Sections, s.Events)
	refine := ledger.NewService(l, gen, s.Projects, s.Sections)
	return workspace.NewService(s.Tx, s.Projects, s.Sections, gen, refine), s
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func titles(sections []*entity.Section) []string {
	out := make([]string, 0, len(sections))
	for _, s := range sections {
		out = append(out, s.Title)
	}
	return out
}

func TestCreateProject_WithSections(t *testing.T) {
	svc, _ := newService(t)

	detail, err := svc.CreateProject(context.Background(), owner, workspace.CreateProjectInput{
		Title:         "Q3 Report",
		Topic:         "quarterly results",
		ContainerType: "word",
		Sections: []workspace.SectionInput{
			{Title: "Outlook", OrderIndex: intPtr(1)},
			{Title: "Summary", OrderIndex: intPtr(0)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ContainerWord, detail.Project.ContainerType)
	assert.Equal(t, []string{"Summary", "Outlook"}, titles(detail.Sections))
	for _, s := range detail.Sections {
		assert.Empty(t, s.Content)
	}
}

func TestCreateProject_SuggestedOutline(t *testing.T) {
	svc, _ := newService(t, docgen.ScriptedReply{Text: "Intro\nBody\nClose"})

	detail, err := svc.CreateProject(context.Background(), owner, workspace.CreateProjectInput{
		Title:         "Pitch",
		ContainerType: "pptx",
		OutlineCount:  3,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ContainerSlide, detail.Project.ContainerType)
	assert.False(t, detail.OutlineFallback)
	assert.Equal(t, []string{"Intro", "Body", "Close"}, titles(detail.Sections))
}

func TestCreateProject_OutlineFailureDoesNotBlock(t *testing.T) {
	svc, _ := newService(t, docgen.ScriptedReply{Err: errors.New("provider down")})

	detail, err := svc.CreateProject(context.Background(), owner, workspace.CreateProjectInput{
		Title:         "Pitch",
		ContainerType: "slide",
		OutlineCount:  2,
	})
	require.NoError(t, err)
	assert.True(t, detail.OutlineFallback)
	assert.Equal(t, []string{"Slide 1", "Slide 2"}, titles(detail.Sections))
}

func TestCreateProject_Validation(t *testing.T) {
	svc, s := newService(t)
	ctx := context.Background()

	cases := []workspace.CreateProjectInput{
		{Title: "", ContainerType: "word"},
		{Title: "x", ContainerType: "pdf"},
		{Title: "x", ContainerType: "word", Sections: []workspace.SectionInput{{Title: " "}}},
		{Title: "x", ContainerType: "word", OutlineCount: -1},
	}
	for _, in := range cases {
		_, err := svc.CreateProject(ctx, owner, in)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	}

	page, err := s.Projects.ListByOwner(ctx, owner, repository.NewPagination(1, 20))
	require.NoError(t, err)
	assert.Zero(t, page.Total)
}

func TestUpdateProject_KeepsContainerType(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	detail, err := svc.CreateProject(ctx, owner, workspace.CreateProjectInput{Title: "Old", ContainerType: "slide"})
	require.NoError(t, err)

	p, err := svc.UpdateProject(ctx, owner, detail.Project.ID, workspace.UpdateProjectInput{Title: strPtr("New"), Topic: strPtr("t")})
	require.NoError(t, err)
	assert.Equal(t, "New", p.Title)

	got, err := svc.GetProject(ctx, owner, detail.Project.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Project.Title)
	assert.Equal(t, "t", got.Project.Topic)
	assert.Equal(t, entity.ContainerSlide, got.Project.ContainerType)

	_, err = svc.UpdateProject(ctx, "intruder", detail.Project.ID, workspace.UpdateProjectInput{Title: strPtr("x")})
	assert.ErrorIs(t, err, apperrors.ErrProjectNotFound)
}

func TestSections_AddUpdateDelete(t *testing.T) {
	svc, s := newService(t)
	ctx := context.Background()
	detail, err := svc.CreateProject(ctx, owner, workspace.CreateProjectInput{
		Title: "Doc", ContainerType: "word",
		Sections: []workspace.SectionInput{{Title: "A"}, {Title: "B"}},
	})
	require.NoError(t, err)
	pid := detail.Project.ID

	c, err := svc.AddSection(ctx, owner, pid, workspace.SectionInput{Title: "C"})
	require.NoError(t, err)
	assert.Equal(t, 2, c.OrderIndex)

	updated, err := svc.UpdateSection(ctx, owner, c.ID, workspace.UpdateSectionInput{
		Title:   strPtr("C2"),
		Content: strPtr("hand written"),
	})
	require.NoError(t, err)
	assert.Equal(t, "C2", updated.Title)
	assert.Equal(t, "hand written", updated.Content)

	events, err := s.Events.ListBySection(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, entity.EventKindEdit, events[0].Kind())

	list, err := svc.ListSections(ctx, owner, pid)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C2"}, titles(list))

	require.NoError(t, svc.DeleteSection(ctx, owner, c.ID))
	events, err = s.Events.ListBySection(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, events)

	err = svc.DeleteSection(ctx, owner, c.ID)
	assert.ErrorIs(t, err, apperrors.ErrSectionNotFound)
}

func TestDeleteProject_Cascades(t *testing.T) {
	svc, s := newService(t)
	ctx := context.Background()
	detail, err := svc.CreateProject(ctx, owner, workspace.CreateProjectInput{
		Title: "Doc", ContainerType: "word",
		Sections: []workspace.SectionInput{{Title: "A"}},
	})
	require.NoError(t, err)
	sid := detail.Sections[0].ID
	_, err = svc.UpdateSection(ctx, owner, sid, workspace.UpdateSectionInput{Content: strPtr("x")})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteProject(ctx, "intruder", detail.Project.ID), apperrors.ErrProjectNotFound)
	require.NoError(t, svc.DeleteProject(ctx, owner, detail.Project.ID))

	got, err := s.Sections.GetByID(ctx, sid)
	require.NoError(t, err)
	assert.Nil(t, got)
	events, err := s.Events.ListBySection(ctx, sid)
	require.NoError(t, err)
	assert.Empty(t, events)
}

// failingEvents 追加事件时总是失败
type failingEvents struct {
	repository.RefinementEventRepository
}

func (failingEvents) Append(context.Context, *entity.RefinementEvent) error {
	return errors.New("event store unavailable")
}

func TestUpdateSection_ContentFailureRollsBackMeta(t *testing.T) {
	s := pgtest.Open(t)
	cfg := &config.Config{
		LLM:        config.LLMConfig{RequestTimeout: time.Second},
		Generation: config.GenerationConfig{DefaultOutlineCount: 5, MaxOutlineCount: 20},
	}
	gen := docgen.NewGenerator(docgen.NewScriptedCompleter(), workflowprompt.NewRegistry(), cfg)
	l := ledger.NewLedger(s.Tx, s.Sections, failingEvents{s.Events})
	svc := workspace.NewService(s.Tx, s.Projects, s.Sections, gen, ledger.NewService(l, gen, s.Projects, s.Sections))
	ctx := context.Background()

	detail, err := svc.CreateProject(ctx, owner, workspace.CreateProjectInput{
		Title: "Doc", ContainerType: "word",
		Sections: []workspace.SectionInput{{Title: "A"}},
	})
	require.NoError(t, err)
	sid := detail.Sections[0].ID

	_, err = svc.UpdateSection(ctx, owner, sid, workspace.UpdateSectionInput{
		Title:      strPtr("A2"),
		OrderIndex: intPtr(7),
		Content:    strPtr("new body"),
	})
	require.Error(t, err)

	got, err := s.Sections.GetByID(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Title)
	assert.Equal(t, 0, got.OrderIndex)
	assert.Empty(t, got.Content)
}
