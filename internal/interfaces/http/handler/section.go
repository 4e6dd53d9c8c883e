// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"z-doc-ai-api/internal/application/ledger"
	"z-doc-ai-api/internal/application/workspace"
	"z-doc-ai-api/internal/interfaces/http/dto"
	"z-doc-ai-api/internal/interfaces/http/middleware"
)

// SectionHandler 小节处理器
type SectionHandler struct {
	svc    *workspace.Service
	refine *ledger.Service
}

// NewSectionHandler 创建小节处理器
func NewSectionHandler(svc *workspace.Service, refine *ledger.Service) *SectionHandler {
	return &SectionHandler{svc: svc, refine: refine}
}

// ListSections 按 order_index 列出小节
// @Summary 小节列表
// @Tags Sections
// @Produce json
// @Param pid path string true "项目 ID"
// @Success 200 {object} dto.Response[[]dto.SectionResponse]
// @Router /v1/projects/{pid}/sections [get]
func (h *SectionHandler) ListSections(c *gin.Context) {
	ctx := c.Request.Context()

	sections, err := h.svc.ListSections(ctx, middleware.GetUserIDFromGin(c), dto.BindProjectID(c))
	if err != nil {
		respondError(c, ctx, "failed to list sections", err)
		return
	}
	resp := dto.ToSectionResponses(sections)
	if resp == nil {
		resp = []*dto.SectionResponse{}
	}
	dto.Success(c, resp)
}

// CreateSection 新增小节
// @Summary 新增小节
// @Tags Sections
// @Accept json
// @Produce json
// @Param pid path string true "项目 ID"
// @Param body body dto.CreateSectionRequest true "小节"
// @Success 201 {object} dto.Response[dto.SectionResponse]
// @Router /v1/projects/{pid}/sections [post]
func (h *SectionHandler) CreateSection(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateSectionRequest
	if !bindJSON(c, &req) {
		return
	}

	section, err := h.svc.AddSection(ctx, middleware.GetUserIDFromGin(c), dto.BindProjectID(c), workspace.SectionInput{
		Title:      req.Title,
		OrderIndex: req.OrderIndex,
	})
	if err != nil {
		respondError(c, ctx, "failed to create section", err)
		return
	}
	dto.Created(c, dto.ToSectionResponse(section))
}

// UpdateSection 修改标题、顺序或内容；内容修改会记入台账
// @Summary 更新小节
// @Tags Sections
// @Accept json
// @Produce json
// @Param sid path string true "小节 ID"
// @Param body body dto.UpdateSectionRequest true "更新内容"
// @Success 200 {object} dto.Response[dto.SectionResponse]
// @Router /v1/sections/{sid} [put]
func (h *SectionHandler) UpdateSection(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.UpdateSectionRequest
	if !bindJSON(c, &req) {
		return
	}

	section, err := h.svc.UpdateSection(ctx, middleware.GetUserIDFromGin(c), dto.BindSectionID(c), workspace.UpdateSectionInput{
		Title:      req.Title,
		OrderIndex: req.OrderIndex,
		Content:    req.Content,
	})
	if err != nil {
		respondError(c, ctx, "failed to update section", err)
		return
	}
	dto.Success(c, dto.ToSectionResponse(section))
}

// DeleteSection 删除小节
// @Summary 删除小节
// @Tags Sections
// @Param sid path string true "小节 ID"
// @Success 204
// @Router /v1/sections/{sid} [delete]
func (h *SectionHandler) DeleteSection(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.svc.DeleteSection(ctx, middleware.GetUserIDFromGin(c), dto.BindSectionID(c)); err != nil {
		respondError(c, ctx, "failed to delete section", err)
		return
	}
	dto.NoContent(c)
}

// History 小节台账，按时间正序
// @Summary 小节修改记录
// @Tags Sections
// @Produce json
// @Param sid path string true "小节 ID"
// @Success 200 {object} dto.Response[[]dto.RefinementEventResponse]
// @Router /v1/sections/{sid}/history [get]
func (h *SectionHandler) History(c *gin.Context) {
	ctx := c.Request.Context()

	events, err := h.refine.History(ctx, middleware.GetUserIDFromGin(c), dto.BindSectionID(c))
	if err != nil {
		respondError(c, ctx, "failed to load section history", err)
		return
	}
	dto.Success(c, dto.ToRefinementEventResponses(events))
}
