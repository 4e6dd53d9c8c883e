// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"z-doc-ai-api/internal/application/docgen"
	"z-doc-ai-api/internal/application/ledger"
	"z-doc-ai-api/internal/application/sequencer"
	"z-doc-ai-api/internal/domain/entity"
	"z-doc-ai-api/internal/interfaces/http/dto"
	"z-doc-ai-api/internal/interfaces/http/middleware"
)

// GenerateHandler 生成、精修与反馈
type GenerateHandler struct {
	generator *docgen.Generator
	sequencer *sequencer.Sequencer
	refine    *ledger.Service
}

// NewGenerateHandler 创建生成处理器
func NewGenerateHandler(generator *docgen.Generator, seq *sequencer.Sequencer, refine *ledger.Service) *GenerateHandler {
	return &GenerateHandler{generator: generator, sequencer: seq, refine: refine}
}

// Outline 建议大纲，失败时返回占位标题
// @Summary 大纲建议
// @Tags Generation
// @Accept json
// @Produce json
// @Param body body dto.OutlineRequest true "主题"
// @Success 200 {object} dto.Response[dto.OutlineResponse]
// @Router /v1/generate/outline [post]
func (h *GenerateHandler) Outline(c *gin.Context) {
	var req dto.OutlineRequest
	if !bindJSON(c, &req) {
		return
	}
	ct, err := entity.ParseContainerType(req.ContainerType)
	if err != nil {
		dto.BadRequest(c, "container_type must be word or slide")
		return
	}

	res := h.generator.SuggestOutline(c.Request.Context(), req.Topic, ct, req.Count)
	dto.Success(c, &dto.OutlineResponse{
		Headings: res.Value,
		Fallback: res.Fallback,
		Reason:   string(res.Reason),
	})
}

// Content 按顺序为项目全部小节生成内容
// @Summary 顺序生成
// @Tags Generation
// @Accept json
// @Produce json
// @Param body body dto.GenerateContentRequest true "项目"
// @Success 200 {object} dto.Response[[]dto.ContentResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /v1/generate/content [post]
func (h *GenerateHandler) Content(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.GenerateContentRequest
	if !bindJSON(c, &req) {
		return
	}

	results, err := h.sequencer.Run(ctx, middleware.GetUserIDFromGin(c), req.ProjectID)
	if err != nil {
		respondError(c, ctx, "failed to generate content", err)
		return
	}
	dto.Success(c, dto.ToContentResponses(results))
}

// Refine 按指令精修小节。模型失败时内容不变，fallback=true
// @Summary 精修
// @Tags Generation
// @Accept json
// @Produce json
// @Param body body dto.RefineRequest true "精修指令"
// @Success 200 {object} dto.Response[dto.RefineResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/generate/refine [post]
func (h *GenerateHandler) Refine(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RefineRequest
	if !bindJSON(c, &req) {
		return
	}

	out, err := h.refine.Refine(ctx, middleware.GetUserIDFromGin(c), req.SectionID, req.Prompt)
	if err != nil {
		respondError(c, ctx, "failed to refine section", err)
		return
	}

	resp := &dto.RefineResponse{ContentResponse: dto.ContentResponse{
		SectionID: out.Section.ID,
		Title:     out.Section.Title,
		Content:   out.Section.Content,
		Fallback:  out.Fallback,
		Reason:    string(out.Reason),
	}}
	if out.Event != nil {
		resp.EventID = out.Event.ID
	}
	dto.Success(c, resp)
}

// Feedback 记录点赞/点踩/评论
// @Summary 反馈
// @Tags Generation
// @Accept json
// @Produce json
// @Param body body dto.FeedbackRequest true "反馈"
// @Success 201 {object} dto.Response[dto.RefinementEventResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/generate/feedback [post]
func (h *GenerateHandler) Feedback(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.FeedbackRequest
	if !bindJSON(c, &req) {
		return
	}
	fb, err := entity.ParseFeedback(req.Feedback)
	if err != nil {
		dto.BadRequest(c, "feedback must be like, dislike or none")
		return
	}

	event, err := h.refine.Feedback(ctx, middleware.GetUserIDFromGin(c), req.SectionID, fb, req.Comment)
	if err != nil {
		respondError(c, ctx, "failed to record feedback", err)
		return
	}
	dto.Created(c, dto.ToRefinementEventResponse(event))
}
