package docgen

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"z-doc-ai-api/internal/config"
	"z-doc-ai-api/internal/domain/entity"
	"z-doc-ai-api/internal/workflow/port"
	workflowprompt "z-doc-ai-api/internal/workflow/prompt"
	"z-doc-ai-api/pkg/logger"
	"z-doc-ai-api/pkg/metrics"
)

var tracer = otel.Tracer("docgen")

const (
	opOutline = "outline"
	opSection = "section"
	opRefine  = "refine"

	defaultRequestTimeout = 60 * time.Second
)

// SectionRequest 小节生成参数
type SectionRequest struct {
	Topic         string
	SectionTitle  string
	ContainerType entity.ContainerType
	// PriorContext 已生成小节的滚动摘要，首节为空
	PriorContext string
}

// RefineRequest 精修参数
type RefineRequest struct {
	CurrentContent string
	Instruction    string
	SectionTitle   string
	ContainerType  entity.ContainerType
}

// Generator 内容生成器，所有方法都不会返回错误，失败时给出降级值
type Generator struct {
	completer    port.Completer
	prompts      *workflowprompt.Registry
	timeout      time.Duration
	defaultCount int
	maxCount     int
}

// NewGenerator 创建内容生成器
func NewGenerator(completer port.Completer, prompts *workflowprompt.Registry, cfg *config.Config) *Generator {
	g := &Generator{
		completer:    completer,
		prompts:      prompts,
		timeout:      cfg.LLM.RequestTimeout,
		defaultCount: cfg.Generation.DefaultOutlineCount,
		maxCount:     cfg.Generation.MaxOutlineCount,
	}
	if g.timeout <= 0 {
		g.timeout = defaultRequestTimeout
	}
	if g.maxCount <= 0 {
		g.maxCount = 20
	}
	if g.defaultCount <= 0 || g.defaultCount > g.maxCount {
		g.defaultCount = min(5, g.maxCount)
	}
	return g
}

// ClampCount 将大纲数量限制在 [1, max]，非正数取默认值
func (g *Generator) ClampCount(count int) int {
	if count <= 0 {
		return g.defaultCount
	}
	return min(count, g.maxCount)
}

// SuggestOutline 生成不超过 count 条的大纲标题；失败时返回占位标题
func (g *Generator) SuggestOutline(ctx context.Context, topic string, ct entity.ContainerType, count int) Result[[]string] {
	ctx, span := tracer.Start(ctx, "docgen.SuggestOutline")
	defer span.End()

	count = g.ClampCount(count)
	id := workflowprompt.PromptOutlineWordV1
	if ct == entity.ContainerSlide {
		id = workflowprompt.PromptOutlineSlideV1
	}

	text, reason, err := g.call(ctx, opOutline, id, map[string]any{
		workflowprompt.VarTopic: strings.TrimSpace(topic),
		workflowprompt.VarCount: count,
	})
	var res Result[[]string]
	if reason == ReasonNone {
		if headings := parseOutline(text, count); len(headings) > 0 {
			res = Ok(headings)
		} else {
			reason = ReasonEmptyResponse
		}
	}
	if reason != ReasonNone {
		res = Fallback(PlaceholderOutline(ct, count), reason, err)
	}

	g.observe(ctx, opOutline, res.outcome(), err)
	span.SetAttributes(attribute.String("docgen.outcome", res.outcome()), attribute.Int("docgen.count", len(res.Value)))
	return res
}

// GenerateSection 生成单个小节内容；失败时返回引用小节标题的占位文本
func (g *Generator) GenerateSection(ctx context.Context, req SectionRequest) Result[string] {
	ctx, span := tracer.Start(ctx, "docgen.GenerateSection")
	defer span.End()

	id := workflowprompt.PromptSectionWordV1
	priorLabel := "Context from previous sections: "
	if req.ContainerType == entity.ContainerSlide {
		id = workflowprompt.PromptSectionSlideV1
		priorLabel = "Context from previous slides: "
	}
	prior := ""
	if req.PriorContext != "" {
		prior = priorLabel + req.PriorContext
	}

	text, reason, err := g.call(ctx, opSection, id, map[string]any{
		workflowprompt.VarTopic:        strings.TrimSpace(req.Topic),
		workflowprompt.VarSectionTitle: req.SectionTitle,
		workflowprompt.VarPriorContext: prior,
	})
	var res Result[string]
	if reason == ReasonNone {
		res = Ok(text)
	} else {
		res = Fallback(PlaceholderContent(req.SectionTitle), reason, err)
	}

	g.observe(ctx, opSection, res.outcome(), err)
	span.SetAttributes(attribute.String("docgen.outcome", res.outcome()))
	return res
}

// RefineSection 按指令改写内容；失败时原样返回当前内容
func (g *Generator) RefineSection(ctx context.Context, req RefineRequest) Result[string] {
	ctx, span := tracer.Start(ctx, "docgen.RefineSection")
	defer span.End()

	format := "paragraphs"
	if req.ContainerType == entity.ContainerSlide {
		format = "bullet points"
	}

	text, reason, err := g.call(ctx, opRefine, workflowprompt.PromptRefineV1, map[string]any{
		workflowprompt.VarSectionTitle:  req.SectionTitle,
		workflowprompt.VarContent:       req.CurrentContent,
		workflowprompt.VarInstruction:   strings.TrimSpace(req.Instruction),
		workflowprompt.VarContentFormat: format,
	})
	var res Result[string]
	if reason == ReasonNone {
		res = Ok(text)
	} else {
		res = Fallback(req.CurrentContent, reason, err)
	}

	g.observe(ctx, opRefine, res.outcome(), err)
	span.SetAttributes(attribute.String("docgen.outcome", res.outcome()))
	return res
}

// call 渲染模板并在超时控制下调用模型，返回裁剪后的文本或降级原因
func (g *Generator) call(ctx context.Context, op string, id workflowprompt.PromptID, vars map[string]any) (string, FallbackReason, error) {
	start := time.Now()
	defer func() {
		metrics.LLMCallDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}()

	msgs, err := g.format(ctx, id, vars)
	if err != nil {
		return "", ReasonProviderError, err
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	text, err := g.completer.Complete(callCtx, msgs)
	if err != nil {
		return "", classify(callCtx, err), err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ReasonEmptyResponse, nil
	}
	return text, ReasonNone, nil
}

func (g *Generator) format(ctx context.Context, id workflowprompt.PromptID, vars map[string]any) ([]*schema.Message, error) {
	tpl, err := g.prompts.ChatTemplate(id)
	if err != nil {
		return nil, err
	}
	return tpl.Format(ctx, vars)
}

func classify(callCtx context.Context, err error) FallbackReason {
	switch {
	case errors.Is(err, port.ErrProviderDisabled):
		return ReasonProviderDisabled
	case errors.Is(err, context.DeadlineExceeded), errors.Is(callCtx.Err(), context.DeadlineExceeded):
		return ReasonTimeout
	default:
		return ReasonProviderError
	}
}

func (g *Generator) observe(ctx context.Context, op, outcome string, err error) {
	metrics.LLMCallTotal.WithLabelValues(op, outcome).Inc()
	if outcome == "ok" {
		return
	}
	if errors.Is(err, port.ErrProviderDisabled) {
		logger.Debug(ctx, "content generator fallback", "operation", op, "reason", outcome)
		return
	}
	logger.Warn(ctx, "content generator fallback", "operation", op, "reason", outcome, "error", errString(err))
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
