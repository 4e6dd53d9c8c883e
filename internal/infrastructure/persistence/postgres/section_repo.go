// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"z-doc-ai-api/internal/domain/entity"
)

// SectionRepository 小节仓储实现
type SectionRepository struct {
	client *Client
	events *RefinementEventRepository
}

// NewSectionRepository 创建小节仓储
func NewSectionRepository(client *Client) *SectionRepository {
	return &SectionRepository{client: client, events: NewRefinementEventRepository(client)}
}

// Create 创建小节
func (r *SectionRepository) Create(ctx context.Context, section *entity.Section) error {
	ctx, span := tracer.Start(ctx, "postgres.SectionRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(section).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create section: %w", err)
	}
	return nil
}

// CreateBatch 批量创建小节
func (r *SectionRepository) CreateBatch(ctx context.Context, sections []*entity.Section) error {
	ctx, span := tracer.Start(ctx, "postgres.SectionRepository.CreateBatch")
	defer span.End()

	if len(sections) == 0 {
		return nil
	}
	db := getDB(ctx, r.client.db)
	if err := db.Create(&sections).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create sections: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取小节
func (r *SectionRepository) GetByID(ctx context.Context, id string) (*entity.Section, error) {
	ctx, span := tracer.Start(ctx, "postgres.SectionRepository.GetByID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var section entity.Section
	if err := db.First(&section, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get section: %w", err)
	}
	return &section, nil
}

// GetForUpdate 在当前事务内加行锁读取小节
func (r *SectionRepository) GetForUpdate(ctx context.Context, id string) (*entity.Section, error) {
	ctx, span := tracer.Start(ctx, "postgres.SectionRepository.GetForUpdate")
	defer span.End()

	db := getDB(ctx, r.client.db).Clauses(clause.Locking{Strength: "UPDATE"})
	var section entity.Section
	if err := db.First(&section, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get section for update: %w", err)
	}
	return &section, nil
}

// GetByOwner 获取属于指定用户项目的小节
func (r *SectionRepository) GetByOwner(ctx context.Context, ownerID, id string) (*entity.Section, error) {
	ctx, span := tracer.Start(ctx, "postgres.SectionRepository.GetByOwner")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var section entity.Section
	err := db.Model(&entity.Section{}).
		Joins("JOIN projects ON projects.id = sections.project_id").
		Where("sections.id = ? AND projects.owner_id = ?", id, ownerID).
		Select("sections.*").
		First(&section).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get section: %w", err)
	}
	return &section, nil
}

// ListByProject 按 order_index 升序获取项目小节
func (r *SectionRepository) ListByProject(ctx context.Context, projectID string) ([]*entity.Section, error) {
	ctx, span := tracer.Start(ctx, "postgres.SectionRepository.ListByProject")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var sections []*entity.Section
	if err := db.Where("project_id = ?", projectID).
		Order("order_index ASC").
		Order("created_at ASC").
		Find(&sections).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list sections: %w", err)
	}
	return sections, nil
}

// UpdateMeta 更新标题与排序
func (r *SectionRepository) UpdateMeta(ctx context.Context, section *entity.Section) error {
	ctx, span := tracer.Start(ctx, "postgres.SectionRepository.UpdateMeta")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Model(&entity.Section{}).Where("id = ?", section.ID).Updates(map[string]interface{}{
		"title":       section.Title,
		"order_index": section.OrderIndex,
	}).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update section: %w", err)
	}
	return nil
}

// UpdateContent 覆盖小节内容
func (r *SectionRepository) UpdateContent(ctx context.Context, id, content string) error {
	ctx, span := tracer.Start(ctx, "postgres.SectionRepository.UpdateContent")
	defer span.End()

	db := getDB(ctx, r.client.db)
	res := db.Model(&entity.Section{}).Where("id = ?", id).Update("content", content)
	if res.Error != nil {
		span.RecordError(res.Error)
		return fmt.Errorf("failed to update section content: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("failed to update section content: %w", gorm.ErrRecordNotFound)
	}
	return nil
}

// Delete 先删除台账事件再删除小节，调用方负责开启事务
func (r *SectionRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.SectionRepository.Delete")
	defer span.End()

	if err := r.events.DeleteBySection(ctx, id); err != nil {
		span.RecordError(err)
		return err
	}
	db := getDB(ctx, r.client.db)
	if err := db.Delete(&entity.Section{}, "id = ?", id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete section: %w", err)
	}
	return nil
}

// NextOrderIndex 获取下一个排序号
func (r *SectionRepository) NextOrderIndex(ctx context.Context, projectID string) (int, error) {
	ctx, span := tracer.Start(ctx, "postgres.SectionRepository.NextOrderIndex")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var maxIndex *int
	if err := db.Model(&entity.Section{}).
		Where("project_id = ?", projectID).
		Select("MAX(order_index)").
		Scan(&maxIndex).Error; err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to get next order index: %w", err)
	}
	if maxIndex == nil {
		return 0, nil
	}
	return *maxIndex + 1, nil
}
