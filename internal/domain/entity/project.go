// Package entity 定义领域实体
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Project 文档项目实体
type Project struct {
	ID            string        `json:"id" gorm:"type:varchar(36);primaryKey"`
	OwnerID       string        `json:"owner_id" gorm:"type:varchar(36);index;not null"`
	Title         string        `json:"title" gorm:"type:varchar(255);not null"`
	Topic         string        `json:"topic,omitempty" gorm:"type:text"`
	ContainerType ContainerType `json:"container_type" gorm:"type:varchar(16);not null"`
	CreatedAt     time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Project) TableName() string {
	return "projects"
}

// NewProject 创建新项目
func NewProject(ownerID, title, topic string, containerType ContainerType) *Project {
	now := time.Now()
	return &Project{
		ID:            uuid.NewString(),
		OwnerID:       ownerID,
		Title:         title,
		Topic:         topic,
		ContainerType: containerType,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// EffectiveTopic 生成使用的主题，未设置时回退到标题
func (p *Project) EffectiveTopic() string {
	if p.Topic != "" {
		return p.Topic
	}
	return p.Title
}

// IsOwnedBy 检查项目归属
func (p *Project) IsOwnedBy(userID string) bool {
	return p.OwnerID == userID
}
