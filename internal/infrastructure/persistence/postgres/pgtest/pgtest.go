// Package pgtest 提供基于内存 SQLite 的仓储测试夹具
package pgtest

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"z-doc-ai-api/internal/infrastructure/persistence/postgres"
)

var seq atomic.Int64

// Stores 测试使用的仓储集合
type Stores struct {
	Client   *postgres.Client
	Tx       *postgres.TxManager
	Users    *postgres.UserRepository
	Projects *postgres.ProjectRepository
	Sections *postgres.SectionRepository
	Events   *postgres.RefinementEventRepository
}

// Open 打开独立的内存数据库并完成迁移
func Open(t testing.TB) *Stores {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, seq.Add(1))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// 单连接保证事务与普通查询看到同一个内存库
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, postgres.Migrate(db))

	client := postgres.NewClientWithDB(db)
	tx := postgres.NewTxManager(client)
	return &Stores{
		Client:   client,
		Tx:       tx,
		Users:    postgres.NewUserRepository(client),
		Projects: postgres.NewProjectRepository(client, tx),
		Sections: postgres.NewSectionRepository(client),
		Events:   postgres.NewRefinementEventRepository(client),
	}
}
