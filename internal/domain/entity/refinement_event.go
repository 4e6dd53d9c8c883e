package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Feedback 用户反馈
type Feedback string

const (
	FeedbackLike    Feedback = "like"
	FeedbackDislike Feedback = "dislike"
	FeedbackNone    Feedback = "none"
)

// ParseFeedback 解析反馈值，空串视为 none
func ParseFeedback(s string) (Feedback, error) {
	switch f := Feedback(strings.ToLower(strings.TrimSpace(s))); f {
	case FeedbackLike, FeedbackDislike, FeedbackNone:
		return f, nil
	case "":
		return FeedbackNone, nil
	default:
		return "", fmt.Errorf("unknown feedback %q", s)
	}
}

// EventKind 台账事件类别，创建时确定并落库
type EventKind string

const (
	EventKindGeneration EventKind = "generation"
	EventKindRefinement EventKind = "refinement"
	EventKindEdit       EventKind = "edit"
	EventKindFeedback   EventKind = "feedback"
)

// IsMutation 是否为内容变更类别
func (k EventKind) IsMutation() bool {
	switch k {
	case EventKindGeneration, EventKindRefinement, EventKindEdit:
		return true
	default:
		return false
	}
}

// GenerationPromptPrefix 初次生成事件记录的提示词前缀
const GenerationPromptPrefix = "generate:"

// RefinementEvent 小节内容变更/反馈事件，创建后不可修改
type RefinementEvent struct {
	ID              string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	SectionID       string    `json:"section_id" gorm:"type:varchar(36);index;not null"`
	EventKind       EventKind `json:"kind" gorm:"column:kind;type:varchar(16);not null"`
	Prompt          string    `json:"prompt" gorm:"type:text"`
	PreviousContent string    `json:"previous_content" gorm:"type:text"`
	NewContent      string    `json:"new_content" gorm:"type:text"`
	Feedback        Feedback  `json:"feedback" gorm:"type:varchar(16);not null;default:'none'"`
	Comment         string    `json:"comment" gorm:"type:text"`
	CreatedAt       time.Time `json:"created_at" gorm:"index"`
}

// TableName 指定表名
func (RefinementEvent) TableName() string {
	return "refinement_events"
}

// newEventID 使用时间有序的 UUIDv7，同一时刻创建的事件按 ID 仍保持追加顺序
func newEventID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// NewMutationEvent 创建内容变更事件
func NewMutationEvent(sectionID string, kind EventKind, prompt, previous, next string) *RefinementEvent {
	return &RefinementEvent{
		ID:              newEventID(),
		SectionID:       sectionID,
		EventKind:       kind,
		Prompt:          prompt,
		PreviousContent: previous,
		NewContent:      next,
		Feedback:        FeedbackNone,
		CreatedAt:       time.Now(),
	}
}

// NewFeedbackEvent 创建反馈事件，前后内容均为当前内容
func NewFeedbackEvent(sectionID, current string, feedback Feedback, comment string) *RefinementEvent {
	return &RefinementEvent{
		ID:              newEventID(),
		SectionID:       sectionID,
		EventKind:       EventKindFeedback,
		PreviousContent: current,
		NewContent:      current,
		Feedback:        feedback,
		Comment:         comment,
		CreatedAt:       time.Now(),
	}
}

// Kind 返回事件类别
func (e *RefinementEvent) Kind() EventKind {
	return e.EventKind
}
