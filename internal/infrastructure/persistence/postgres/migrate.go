package postgres

import (
	"fmt"

	"gorm.io/gorm"

	"z-doc-ai-api/internal/domain/entity"
)

// Migrate 自动迁移全部表结构
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&entity.User{},
		&entity.Project{},
		&entity.Section{},
		&entity.RefinementEvent{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
