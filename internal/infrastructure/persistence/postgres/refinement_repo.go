// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"

	"z-doc-ai-api/internal/domain/entity"
)

// RefinementEventRepository 台账事件仓储实现
type RefinementEventRepository struct {
	client *Client
}

// NewRefinementEventRepository 创建台账事件仓储
func NewRefinementEventRepository(client *Client) *RefinementEventRepository {
	return &RefinementEventRepository{client: client}
}

// Append 追加事件
func (r *RefinementEventRepository) Append(ctx context.Context, event *entity.RefinementEvent) error {
	ctx, span := tracer.Start(ctx, "postgres.RefinementEventRepository.Append")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(event).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to append refinement event: %w", err)
	}
	return nil
}

// ListBySection 按创建顺序获取小节事件
func (r *RefinementEventRepository) ListBySection(ctx context.Context, sectionID string) ([]*entity.RefinementEvent, error) {
	ctx, span := tracer.Start(ctx, "postgres.RefinementEventRepository.ListBySection")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var events []*entity.RefinementEvent
	if err := db.Where("section_id = ?", sectionID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&events).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list refinement events: %w", err)
	}
	return events, nil
}

// DeleteBySection 删除小节的全部事件，仅供删除小节时级联使用
func (r *RefinementEventRepository) DeleteBySection(ctx context.Context, sectionID string) error {
	ctx, span := tracer.Start(ctx, "postgres.RefinementEventRepository.DeleteBySection")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Where("section_id = ?", sectionID).Delete(&entity.RefinementEvent{}).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete refinement events: %w", err)
	}
	return nil
}
