//go:build wireinject
// +build wireinject

// Package wire 提供依赖注入配置
package wire

import (
	"context"

	"github.com/google/wire"

	"z-doc-ai-api/internal/application/docgen"
	"z-doc-ai-api/internal/application/export"
	"z-doc-ai-api/internal/application/ledger"
	"z-doc-ai-api/internal/application/sequencer"
	"z-doc-ai-api/internal/application/workspace"
	"z-doc-ai-api/internal/config"
	"z-doc-ai-api/internal/domain/repository"
	"z-doc-ai-api/internal/infrastructure/llm"
	"z-doc-ai-api/internal/infrastructure/persistence/postgres"
	"z-doc-ai-api/internal/interfaces/http/handler"
	"z-doc-ai-api/internal/interfaces/http/router"
	workflowprompt "z-doc-ai-api/internal/workflow/prompt"
)

// InitializePostgresOnly 仅初始化 PostgreSQL 数据层（用于 bootstrap）
func InitializePostgresOnly(ctx context.Context, cfg *config.Config) (*PostgresOnlyDataLayer, func(), error) {
	wire.Build(
		PostgresSet,
		wire.Struct(new(PostgresOnlyDataLayer), "*"),
	)
	return nil, nil, nil
}

// InitializeApp 初始化整个应用（带路由器）
func InitializeApp(ctx context.Context, cfg *config.Config) (*router.Router, func(), error) {
	wire.Build(
		RepoSet,
		RedisSet,
		GenerationSet,
		RouterSet,
	)
	return nil, nil, nil
}

// PostgresSet PostgreSQL 提供者集合
var PostgresSet = wire.NewSet(
	ProvidePostgresClient,
	postgres.NewTxManager,
	postgres.NewUserRepository,
	postgres.NewProjectRepository,
	postgres.NewSectionRepository,
	postgres.NewRefinementEventRepository,
)

// RepoSet 整合了具体实现与接口绑定的集合
var RepoSet = wire.NewSet(
	PostgresSet,
	wire.Bind(new(repository.Transactor), new(*postgres.TxManager)),
	wire.Bind(new(repository.UserRepository), new(*postgres.UserRepository)),
	wire.Bind(new(repository.ProjectRepository), new(*postgres.ProjectRepository)),
	wire.Bind(new(repository.SectionRepository), new(*postgres.SectionRepository)),
	wire.Bind(new(repository.RefinementEventRepository), new(*postgres.RefinementEventRepository)),
)

// RedisSet 可选 Redis（未启用或不可达时锁与限流降级为进程内/关闭）
var RedisSet = wire.NewSet(
	ProvideRedisClientOptional,
	ProvideSequencerLocker,
	ProvideRateLimiter,
)

// GenerationSet 生成、台账与导出
var GenerationSet = wire.NewSet(
	llm.NewEinoFactory,
	llm.NewCompleter,
	workflowprompt.NewRegistry,
	docgen.NewGenerator,
	ledger.NewLedger,
	ledger.NewService,
	sequencer.NewSequencer,
	workspace.NewService,
	export.NewService,
)

// RouterSet 路由器提供者集合
var RouterSet = wire.NewSet(
	ProvideHealthHandler,
	ProvideAuthHandler,
	handler.NewUserHandler,
	handler.NewProjectHandler,
	handler.NewSectionHandler,
	handler.NewGenerateHandler,
	handler.NewExportHandler,
	wire.Struct(new(router.Handlers), "*"),
	router.New,
)
