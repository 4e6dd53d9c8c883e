// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"z-doc-ai-api/internal/application/workspace"
	"z-doc-ai-api/internal/domain/repository"
	"z-doc-ai-api/internal/interfaces/http/dto"
	"z-doc-ai-api/internal/interfaces/http/middleware"
)

// ProjectHandler 项目处理器
type ProjectHandler struct {
	svc *workspace.Service
}

// NewProjectHandler 创建项目处理器
func NewProjectHandler(svc *workspace.Service) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

// ListProjects 获取项目列表
// @Summary 获取项目列表
// @Tags Projects
// @Produce json
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页条数" default(20)
// @Success 200 {object} dto.Response[dto.ProjectListResponse]
// @Router /v1/projects [get]
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	ctx := c.Request.Context()
	page := dto.BindPage(c)

	result, err := h.svc.ListProjects(ctx, middleware.GetUserIDFromGin(c), repository.NewPagination(page.Page, page.PageSize))
	if err != nil {
		respondError(c, ctx, "failed to list projects", err)
		return
	}
	dto.SuccessWithPage(c, dto.ToProjectListResponse(result.Items), dto.NewPageMeta(result.Page, result.PageSize, int(result.Total)))
}

// CreateProject 创建项目
// @Summary 创建项目
// @Description 未提供 sections 且 outline_count > 0 时由生成器建议大纲，生成失败时使用占位标题
// @Tags Projects
// @Accept json
// @Produce json
// @Param body body dto.CreateProjectRequest true "项目信息"
// @Success 201 {object} dto.Response[dto.ProjectResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	detail, err := h.svc.CreateProject(ctx, middleware.GetUserIDFromGin(c), req.ToInput())
	if err != nil {
		respondError(c, ctx, "failed to create project", err)
		return
	}
	dto.Created(c, dto.ToProjectDetailResponse(detail))
}

// GetProject 获取项目详情（含有序小节）
// @Summary 获取项目详情
// @Tags Projects
// @Produce json
// @Param pid path string true "项目 ID"
// @Success 200 {object} dto.Response[dto.ProjectResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/projects/{pid} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	ctx := c.Request.Context()

	detail, err := h.svc.GetProject(ctx, middleware.GetUserIDFromGin(c), dto.BindProjectID(c))
	if err != nil {
		respondError(c, ctx, "failed to get project", err)
		return
	}
	dto.Success(c, dto.ToProjectDetailResponse(detail))
}

// UpdateProject 更新项目标题与主题
// @Summary 更新项目
// @Tags Projects
// @Accept json
// @Produce json
// @Param pid path string true "项目 ID"
// @Param body body dto.UpdateProjectRequest true "更新内容"
// @Success 200 {object} dto.Response[dto.ProjectResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/projects/{pid} [put]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.UpdateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	project, err := h.svc.UpdateProject(ctx, middleware.GetUserIDFromGin(c), dto.BindProjectID(c), workspace.UpdateProjectInput{
		Title: req.Title,
		Topic: req.Topic,
	})
	if err != nil {
		respondError(c, ctx, "failed to update project", err)
		return
	}
	dto.Success(c, dto.ToProjectResponse(project))
}

// DeleteProject 删除项目及其小节、台账
// @Summary 删除项目
// @Tags Projects
// @Param pid path string true "项目 ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/projects/{pid} [delete]
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.svc.DeleteProject(ctx, middleware.GetUserIDFromGin(c), dto.BindProjectID(c)); err != nil {
		respondError(c, ctx, "failed to delete project", err)
		return
	}
	dto.NoContent(c)
}
