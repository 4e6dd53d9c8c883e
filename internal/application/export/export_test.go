package export_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"z-doc-ai-api/internal/application/export"
	"z-doc-ai-api/internal/domain/entity"
	"z-doc-ai-api/internal/infrastructure/document/docx"
	"z-doc-ai-api/internal/infrastructure/document/pptx"
	"z-doc-ai-api/internal/infrastructure/persistence/postgres/pgtest"
	apperrors "z-doc-ai-api/pkg/errors"
)

func seed(t *testing.T, s *pgtest.Stores, title string, ct entity.ContainerType, sections ...[2]string) *entity.Project {
	t.Helper()
	ctx := context.Background()
	p := entity.NewProject("owner-1", title, "", ct)
	require.NoError(t, s.Projects.Create(ctx, p))
	for i, sec := range sections {
		e := entity.NewSection(p.ID, sec[0], i)
		e.Content = sec[1]
		require.NoError(t, s.Sections.Create(ctx, e))
	}
	return p
}

func TestAssemble_StableOrder(t *testing.T) {
	p := entity.NewProject("o", "Doc", "", entity.ContainerWord)
	a := &entity.Section{Title: "A", OrderIndex: 2}
	b := &entity.Section{Title: "B", OrderIndex: 1}
	c := &entity.Section{Title: "C", OrderIndex: 1}
	d := &entity.Section{Title: "D", OrderIndex: 0}

	doc := export.Assemble(p, []*entity.Section{a, b, nil, c, d})
	var titles []string
	for _, s := range doc.Sections {
		titles = append(titles, s.Title)
	}
	assert.Equal(t, []string{"D", "B", "C", "A"}, titles)
	assert.Equal(t, entity.ContainerWord, doc.ContainerType)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "Q3 Report.docx", export.Filename("Q3 Report", entity.ContainerWord))
	assert.Equal(t, "a_b_c.pptx", export.Filename(`a/b"c`, entity.ContainerSlide))
	assert.Equal(t, "document.docx", export.Filename("  ", entity.ContainerWord))
}

func TestService_ExportWord(t *testing.T) {
	s := pgtest.Open(t)
	p := seed(t, s, "Q3 Report", entity.ContainerWord,
		[2]string{"Summary", "Revenue grew.\n\nCosts fell."},
		[2]string{"Outlook", "Positive."},
	)
	svc := export.NewService(s.Projects, s.Sections)

	artifact, err := svc.Export(context.Background(), "owner-1", p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Q3 Report.docx", artifact.Filename)
	assert.Equal(t, entity.ContainerWord.MIMEType(), artifact.MIMEType)

	outline, err := docx.ReadOutline(artifact.Data)
	require.NoError(t, err)
	assert.Equal(t, "Q3 Report", outline.Title)
	require.Len(t, outline.Sections, 2)
	assert.Equal(t, []string{"Revenue grew.", "Costs fell."}, outline.Sections[0].Paragraphs)
	assert.Equal(t, []string{"Positive."}, outline.Sections[1].Paragraphs)
}

func TestService_ExportSlide(t *testing.T) {
	s := pgtest.Open(t)
	p := seed(t, s, "Pitch", entity.ContainerSlide, [2]string{"Overview", "- Point A\n- Point B"})
	svc := export.NewService(s.Projects, s.Sections)

	artifact, err := svc.Export(context.Background(), "owner-1", p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pitch.pptx", artifact.Filename)

	deck, err := pptx.ReadDeck(artifact.Data)
	require.NoError(t, err)
	require.Len(t, deck.Slides, 2)
	assert.Equal(t, "Overview", deck.Slides[1].Title)
	assert.Equal(t, []string{"Point A", "Point B"}, deck.Slides[1].Bullets())
}

func TestService_ExportReflectsLatestContent(t *testing.T) {
	s := pgtest.Open(t)
	ctx := context.Background()
	p := seed(t, s, "Doc", entity.ContainerWord, [2]string{"A", "old"})
	svc := export.NewService(s.Projects, s.Sections)

	_, err := svc.Export(ctx, "owner-1", p.ID)
	require.NoError(t, err)

	sections, err := s.Sections.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	require.NoError(t, s.Sections.UpdateContent(ctx, sections[0].ID, "new"))

	artifact, err := svc.Export(ctx, "owner-1", p.ID)
	require.NoError(t, err)
	outline, err := docx.ReadOutline(artifact.Data)
	require.NoError(t, err)
	assert.Equal(t, []string{"new"}, outline.Sections[0].Paragraphs)
}

func TestService_ExportNotFound(t *testing.T) {
	s := pgtest.Open(t)
	p := seed(t, s, "Doc", entity.ContainerWord)
	svc := export.NewService(s.Projects, s.Sections)

	_, err := svc.Export(context.Background(), "someone-else", p.ID)
	assert.ErrorIs(t, err, apperrors.ErrProjectNotFound)

	_, err = svc.Export(context.Background(), "owner-1", "missing")
	assert.ErrorIs(t, err, apperrors.ErrProjectNotFound)
}

func TestService_Preview(t *testing.T) {
	s := pgtest.Open(t)
	p := seed(t, s, "Pitch", entity.ContainerSlide,
		[2]string{"Overview", "• Point A\n• <b>Point B</b>"},
		[2]string{"Empty", ""},
	)
	svc := export.NewService(s.Projects, s.Sections)

	html, err := svc.Preview(context.Background(), "owner-1", p.ID)
	require.NoError(t, err)
	assert.Contains(t, html, "<h1>Pitch</h1>")
	assert.Contains(t, html, "<h2>Overview</h2>")
	assert.Contains(t, html, "<li>Point A</li>")
	assert.Contains(t, html, "<h2>Empty</h2>")
	assert.NotContains(t, html, "<b>Point B</b>")
}

func TestMarkdown_WordParagraphs(t *testing.T) {
	doc := export.AssembledDocument{
		Title:         "Doc",
		ContainerType: entity.ContainerWord,
	}
	doc.Sections = append(doc.Sections, export.Assemble(
		entity.NewProject("o", "Doc", "", entity.ContainerWord),
		[]*entity.Section{{Title: "A", Content: "one\n\ntwo"}},
	).Sections...)

	assert.Equal(t, "# Doc\n\n## A\n\none\n\ntwo\n", export.Markdown(doc))
}
