package docgen

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"z-doc-ai-api/internal/config"
	"z-doc-ai-api/internal/domain/entity"
	"z-doc-ai-api/internal/workflow/port"
	workflowprompt "z-doc-ai-api/internal/workflow/prompt"
)

func testConfig() *config.Config {
	return &config.Config{
		LLM: config.LLMConfig{RequestTimeout: time.Second},
		Generation: config.GenerationConfig{
			ContextMaxRunes: 500, PreviewRunes: 200, DefaultOutlineCount: 5, MaxOutlineCount: 20,
		},
	}
}

func newTestGenerator(c port.Completer) *Generator {
	return NewGenerator(c, workflowprompt.NewRegistry(), testConfig())
}

func TestSuggestOutline_ParsesAndCaps(t *testing.T) {
	fake := NewScriptedCompleter(ScriptedReply{Text: "1. Introduction\n- Market Overview\n\n* **Risks**\n• Outlook\n2) Extra"})
	g := newTestGenerator(fake)

	res := g.SuggestOutline(context.Background(), "Q3 results", entity.ContainerWord, 4)
	assert.False(t, res.Fallback)
	assert.Equal(t, []string{"Introduction", "Market Overview", "Risks", "Outlook"}, res.Value)
	assert.Contains(t, fake.LastUserPrompt(), "Generate 4 section headings")
	assert.Contains(t, fake.LastUserPrompt(), "Q3 results")
}

func TestSuggestOutline_FallbackPlaceholders(t *testing.T) {
	g := newTestGenerator(NewScriptedCompleter(ScriptedReply{Err: errors.New("boom")}))

	res := g.SuggestOutline(context.Background(), "x", entity.ContainerSlide, 3)
	assert.True(t, res.Fallback)
	assert.Equal(t, ReasonProviderError, res.Reason)
	assert.Equal(t, []string{"Slide 1", "Slide 2", "Slide 3"}, res.Value)

	res = g.SuggestOutline(context.Background(), "x", entity.ContainerWord, 2)
	assert.True(t, res.Fallback)
	assert.Equal(t, ReasonEmptyResponse, res.Reason)
	assert.Equal(t, []string{"Section 1", "Section 2"}, res.Value)
}

func TestSuggestOutline_CountClamped(t *testing.T) {
	g := newTestGenerator(NewScriptedCompleter())

	assert.Len(t, g.SuggestOutline(context.Background(), "x", entity.ContainerWord, 0).Value, 5)
	assert.Len(t, g.SuggestOutline(context.Background(), "x", entity.ContainerWord, 99).Value, 20)
}

func TestGenerateSection_PromptShapeByContainer(t *testing.T) {
	fake := NewScriptedCompleter(ScriptedReply{Text: "  Body text.  "}, ScriptedReply{Text: "- a\n- b"})
	g := newTestGenerator(fake)

	res := g.GenerateSection(context.Background(), SectionRequest{
		Topic: "Q3", SectionTitle: "Intro", ContainerType: entity.ContainerWord,
	})
	assert.False(t, res.Fallback)
	assert.Equal(t, "Body text.", res.Value)
	prompt := fake.LastUserPrompt()
	assert.Contains(t, prompt, "Section: Intro")
	assert.Contains(t, prompt, "paragraphs")
	assert.NotContains(t, prompt, "Context from previous")

	res = g.GenerateSection(context.Background(), SectionRequest{
		Topic: "Q3", SectionTitle: "Agenda", ContainerType: entity.ContainerSlide, PriorContext: "\nIntro: Body text....",
	})
	assert.Equal(t, "- a\n- b", res.Value)
	prompt = fake.LastUserPrompt()
	assert.Contains(t, prompt, "Slide Title: Agenda")
	assert.Contains(t, prompt, "bullet points")
	assert.Contains(t, prompt, "Context from previous slides: \nIntro: Body text....")
}

func TestGenerateSection_FallbackReasons(t *testing.T) {
	cases := []struct {
		name   string
		reply  ScriptedReply
		reason FallbackReason
	}{
		{"disabled", ScriptedReply{Err: port.ErrProviderDisabled}, ReasonProviderDisabled},
		{"error", ScriptedReply{Err: errors.New("500")}, ReasonProviderError},
		{"empty", ScriptedReply{Text: "   \n"}, ReasonEmptyResponse},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGenerator(NewScriptedCompleter(tc.reply))
			res := g.GenerateSection(context.Background(), SectionRequest{SectionTitle: "Risks"})
			assert.True(t, res.Fallback)
			assert.Equal(t, tc.reason, res.Reason)
			assert.Equal(t, "Content for Risks will be generated here.", res.Value)
		})
	}
}

func TestGenerateSection_TimeoutIsFallback(t *testing.T) {
	fake := &ScriptedCompleter{Fn: func(ctx context.Context, _ []*schema.Message) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}}
	cfg := testConfig()
	cfg.LLM.RequestTimeout = 20 * time.Millisecond
	g := NewGenerator(fake, workflowprompt.NewRegistry(), cfg)

	res := g.GenerateSection(context.Background(), SectionRequest{SectionTitle: "Slow"})
	assert.True(t, res.Fallback)
	assert.Equal(t, ReasonTimeout, res.Reason)
	assert.ErrorIs(t, res.Err, context.DeadlineExceeded)
}

func TestRefineSection(t *testing.T) {
	fake := NewScriptedCompleter(ScriptedReply{Text: "Shorter."})
	g := newTestGenerator(fake)

	res := g.RefineSection(context.Background(), RefineRequest{
		CurrentContent: "A long paragraph.", Instruction: "make it shorter",
		SectionTitle: "Intro", ContainerType: entity.ContainerWord,
	})
	require.False(t, res.Fallback)
	assert.Equal(t, "Shorter.", res.Value)
	prompt := fake.LastUserPrompt()
	assert.Contains(t, prompt, `Current content for "Intro":`)
	assert.Contains(t, prompt, "User wants: make it shorter")
	assert.True(t, strings.Contains(prompt, "Keep the format as paragraphs"))
}

func TestRefineSection_FailureKeepsContent(t *testing.T) {
	g := newTestGenerator(NewScriptedCompleter(ScriptedReply{Err: errors.New("down")}))

	res := g.RefineSection(context.Background(), RefineRequest{
		CurrentContent: "- keep me", Instruction: "x", SectionTitle: "S", ContainerType: entity.ContainerSlide,
	})
	assert.True(t, res.Fallback)
	assert.Equal(t, "- keep me", res.Value)
}

func TestParseOutline(t *testing.T) {
	assert.Equal(t, []string{"2024 Outlook", "Plan"}, parseOutline("2024 Outlook\n3. Plan", 5))
	assert.Empty(t, parseOutline("\n - \n", 5))
}

func TestStripNumbering(t *testing.T) {
	tests := map[string]string{
		"1. Intro":      "Intro",
		"12) Findings":  "Findings",
		"3: Next Steps": "Next Steps",
		"2024 - Review": "2024 - Review",
		"2024 Outlook":  "2024 Outlook",
		"42":            "42",
		"Plain Heading": "Plain Heading",
	}
	for in, want := range tests {
		assert.Equal(t, want, stripNumbering(in), in)
	}
}
