package entity

import (
	"time"

	"github.com/google/uuid"
)

// Section 文档小节（Word 中的标题+段落，幻灯片中的一页）
type Section struct {
	ID         string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	ProjectID  string    `json:"project_id" gorm:"type:varchar(36);index;not null"`
	Title      string    `json:"title" gorm:"type:varchar(255);not null"`
	Content    string    `json:"content" gorm:"type:text"`
	OrderIndex int       `json:"order_index" gorm:"not null;default:0"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Section) TableName() string {
	return "sections"
}

// NewSection 创建空小节
func NewSection(projectID, title string, orderIndex int) *Section {
	now := time.Now()
	return &Section{
		ID:         uuid.NewString(),
		ProjectID:  projectID,
		Title:      title,
		OrderIndex: orderIndex,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// IsEmpty 内容是否为空
func (s *Section) IsEmpty() bool {
	return s.Content == ""
}
