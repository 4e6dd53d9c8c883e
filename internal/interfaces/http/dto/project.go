// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"z-doc-ai-api/internal/application/workspace"
	"z-doc-ai-api/internal/domain/entity"
)

// SectionCreateRequest 创建项目时附带的小节
type SectionCreateRequest struct {
	Title      string `json:"title" binding:"required,max=255"`
	OrderIndex *int   `json:"order_index" binding:"omitempty,gte=0"`
}

// CreateProjectRequest 创建项目请求
type CreateProjectRequest struct {
	Title         string                 `json:"title" binding:"required,max=255"`
	Topic         string                 `json:"topic" binding:"max=5000"`
	ContainerType string                 `json:"container_type" binding:"required"`
	Sections      []SectionCreateRequest `json:"sections" binding:"omitempty,dive"`
	// OutlineCount 未提供 sections 时让生成器建议的标题数量
	OutlineCount int `json:"outline_count" binding:"gte=0,lte=20"`
}

// ToInput 转换为应用层参数
func (r *CreateProjectRequest) ToInput() workspace.CreateProjectInput {
	in := workspace.CreateProjectInput{
		Title:         r.Title,
		Topic:         r.Topic,
		ContainerType: r.ContainerType,
		OutlineCount:  r.OutlineCount,
	}
	for _, s := range r.Sections {
		in.Sections = append(in.Sections, workspace.SectionInput{Title: s.Title, OrderIndex: s.OrderIndex})
	}
	return in
}

// UpdateProjectRequest 更新项目请求，容器类型不可修改
type UpdateProjectRequest struct {
	Title *string `json:"title,omitempty" binding:"omitempty,max=255"`
	Topic *string `json:"topic,omitempty" binding:"omitempty,max=5000"`
}

// ProjectResponse 项目响应
type ProjectResponse struct {
	ID              string             `json:"id"`
	Title           string             `json:"title"`
	Topic           string             `json:"topic,omitempty"`
	ContainerType   string             `json:"container_type"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
	Sections        []*SectionResponse `json:"sections,omitempty"`
	OutlineFallback bool               `json:"outline_fallback,omitempty"`
}

// ProjectListResponse 项目列表响应
type ProjectListResponse struct {
	Projects []*ProjectResponse `json:"projects"`
}

// ToProjectResponse 将领域实体转换为响应 DTO
func ToProjectResponse(p *entity.Project) *ProjectResponse {
	if p == nil {
		return nil
	}
	return &ProjectResponse{
		ID:            p.ID,
		Title:         p.Title,
		Topic:         p.Topic,
		ContainerType: p.ContainerType.String(),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ToProjectDetailResponse 项目详情（含有序小节）
func ToProjectDetailResponse(d *workspace.ProjectDetail) *ProjectResponse {
	if d == nil {
		return nil
	}
	resp := ToProjectResponse(d.Project)
	resp.Sections = ToSectionResponses(d.Sections)
	if resp.Sections == nil {
		resp.Sections = []*SectionResponse{}
	}
	resp.OutlineFallback = d.OutlineFallback
	return resp
}

// ToProjectListResponse 转换项目列表
func ToProjectListResponse(projects []*entity.Project) *ProjectListResponse {
	resp := &ProjectListResponse{Projects: make([]*ProjectResponse, 0, len(projects))}
	for _, p := range projects {
		resp.Projects = append(resp.Projects, ToProjectResponse(p))
	}
	return resp
}
