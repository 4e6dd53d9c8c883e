// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"z-doc-ai-api/internal/application/sequencer"
)

// OutlineRequest 大纲建议请求
type OutlineRequest struct {
	Topic         string `json:"topic" binding:"required,max=5000"`
	ContainerType string `json:"container_type" binding:"required"`
	Count         int    `json:"count" binding:"gte=0,lte=20"`
}

// OutlineResponse 大纲建议响应
type OutlineResponse struct {
	Headings []string `json:"headings"`
	Fallback bool     `json:"fallback"`
	Reason   string   `json:"fallback_reason,omitempty"`
}

// GenerateContentRequest 整个项目顺序生成请求
type GenerateContentRequest struct {
	ProjectID string `json:"project_id" binding:"required"`
}

// ContentResponse 单节内容响应
type ContentResponse struct {
	SectionID string `json:"section_id"`
	Title     string `json:"title,omitempty"`
	Content   string `json:"content"`
	Fallback  bool   `json:"fallback"`
	Reason    string `json:"fallback_reason,omitempty"`
}

// RefineRequest 精修请求
type RefineRequest struct {
	SectionID string `json:"section_id" binding:"required"`
	Prompt    string `json:"prompt" binding:"required,max=5000"`
}

// RefineResponse 精修响应
type RefineResponse struct {
	ContentResponse
	EventID string `json:"event_id,omitempty"`
}

// FeedbackRequest 反馈请求
type FeedbackRequest struct {
	SectionID string `json:"section_id" binding:"required"`
	Feedback  string `json:"feedback" binding:"omitempty,oneof=like dislike none"`
	Comment   string `json:"comment" binding:"max=5000"`
}

// ToContentResponses 转换顺序生成结果
func ToContentResponses(results []sequencer.SectionResult) []*ContentResponse {
	out := make([]*ContentResponse, 0, len(results))
	for _, r := range results {
		out = append(out, &ContentResponse{
			SectionID: r.SectionID,
			Title:     r.Title,
			Content:   r.Content,
			Fallback:  r.Fallback,
			Reason:    string(r.Reason),
		})
	}
	return out
}
