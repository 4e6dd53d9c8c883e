// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"z-doc-ai-api/internal/domain/entity"
)

// ProjectRepository 项目仓储接口
type ProjectRepository interface {
	// Create 创建项目
	Create(ctx context.Context, project *entity.Project) error

	// GetByID 根据 ID 获取项目
	GetByID(ctx context.Context, id string) (*entity.Project, error)

	// GetByOwner 获取属于指定用户的项目，不存在或不属于该用户时返回 nil
	GetByOwner(ctx context.Context, ownerID, id string) (*entity.Project, error)

	// Update 更新项目标题与主题
	Update(ctx context.Context, project *entity.Project) error

	// ListByOwner 获取用户项目列表
	ListByOwner(ctx context.Context, ownerID string, pagination Pagination) (*PagedResult[*entity.Project], error)

	// DeleteCascade 按 台账事件 -> 小节 -> 项目 的顺序在同一事务内删除
	DeleteCascade(ctx context.Context, id string) error
}
