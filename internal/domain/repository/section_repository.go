package repository

import (
	"context"

	"z-doc-ai-api/internal/domain/entity"
)

// SectionRepository 小节仓储接口
type SectionRepository interface {
	// Create 创建小节
	Create(ctx context.Context, section *entity.Section) error

	// CreateBatch 批量创建小节
	CreateBatch(ctx context.Context, sections []*entity.Section) error

	// GetByID 根据 ID 获取小节
	GetByID(ctx context.Context, id string) (*entity.Section, error)

	// GetForUpdate 在当前事务内加行锁读取小节
	GetForUpdate(ctx context.Context, id string) (*entity.Section, error)

	// GetByOwner 获取属于指定用户项目的小节
	GetByOwner(ctx context.Context, ownerID, id string) (*entity.Section, error)

	// ListByProject 按 order_index 升序获取项目小节
	ListByProject(ctx context.Context, projectID string) ([]*entity.Section, error)

	// UpdateMeta 更新标题与排序（不触碰内容）
	UpdateMeta(ctx context.Context, section *entity.Section) error

	// UpdateContent 覆盖小节内容
	UpdateContent(ctx context.Context, id, content string) error

	// Delete 删除小节
	Delete(ctx context.Context, id string) error

	// NextOrderIndex 获取下一个排序号
	NextOrderIndex(ctx context.Context, projectID string) (int, error)
}
