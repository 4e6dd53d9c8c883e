// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"z-doc-ai-api/internal/domain/entity"
)

// CreateSectionRequest 新增小节请求，order_index 为空时追加到末尾
type CreateSectionRequest struct {
	Title      string `json:"title" binding:"required,max=255"`
	OrderIndex *int   `json:"order_index" binding:"omitempty,gte=0"`
}

// UpdateSectionRequest 更新小节请求
type UpdateSectionRequest struct {
	Title      *string `json:"title,omitempty" binding:"omitempty,max=255"`
	OrderIndex *int    `json:"order_index,omitempty" binding:"omitempty,gte=0"`
	Content    *string `json:"content,omitempty"`
}

// SectionResponse 小节响应
type SectionResponse struct {
	ID         string    `json:"id"`
	ProjectID  string    `json:"project_id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	OrderIndex int       `json:"order_index"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// RefinementEventResponse 台账事件响应
type RefinementEventResponse struct {
	ID              string    `json:"id"`
	Kind            string    `json:"kind"`
	Prompt          string    `json:"prompt,omitempty"`
	PreviousContent string    `json:"previous_content"`
	NewContent      string    `json:"new_content"`
	Feedback        string    `json:"feedback,omitempty"`
	Comment         string    `json:"comment,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// ToSectionResponse 将领域实体转换为响应 DTO
func ToSectionResponse(s *entity.Section) *SectionResponse {
	if s == nil {
		return nil
	}
	return &SectionResponse{
		ID:         s.ID,
		ProjectID:  s.ProjectID,
		Title:      s.Title,
		Content:    s.Content,
		OrderIndex: s.OrderIndex,
		UpdatedAt:  s.UpdatedAt,
	}
}

// ToSectionResponses 转换小节列表
func ToSectionResponses(sections []*entity.Section) []*SectionResponse {
	if len(sections) == 0 {
		return nil
	}
	out := make([]*SectionResponse, 0, len(sections))
	for _, s := range sections {
		out = append(out, ToSectionResponse(s))
	}
	return out
}

// ToRefinementEventResponse 转换台账事件
func ToRefinementEventResponse(e *entity.RefinementEvent) *RefinementEventResponse {
	if e == nil {
		return nil
	}
	resp := &RefinementEventResponse{
		ID:              e.ID,
		Kind:            string(e.Kind()),
		Prompt:          e.Prompt,
		PreviousContent: e.PreviousContent,
		NewContent:      e.NewContent,
		Comment:         e.Comment,
		CreatedAt:       e.CreatedAt,
	}
	if e.Feedback != entity.FeedbackNone {
		resp.Feedback = string(e.Feedback)
	}
	return resp
}

// ToRefinementEventResponses 转换台账列表
func ToRefinementEventResponses(events []*entity.RefinementEvent) []*RefinementEventResponse {
	out := make([]*RefinementEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, ToRefinementEventResponse(e))
	}
	return out
}
