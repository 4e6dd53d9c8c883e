package repository

import (
	"context"

	"z-doc-ai-api/internal/domain/entity"
)

// RefinementEventRepository 台账事件仓储接口（只追加）
type RefinementEventRepository interface {
	// Append 追加事件
	Append(ctx context.Context, event *entity.RefinementEvent) error

	// ListBySection 按创建时间升序获取小节事件
	ListBySection(ctx context.Context, sectionID string) ([]*entity.RefinementEvent, error)
}
