// Package wire 提供依赖注入配置
package wire

import (
	"context"

	"z-doc-ai-api/internal/application/sequencer"
	"z-doc-ai-api/internal/config"
	"z-doc-ai-api/internal/domain/repository"
	"z-doc-ai-api/internal/infrastructure/persistence/postgres"
	"z-doc-ai-api/internal/infrastructure/persistence/redis"
	"z-doc-ai-api/internal/interfaces/http/handler"
	"z-doc-ai-api/internal/interfaces/http/middleware"
	"z-doc-ai-api/pkg/logger"
)

// PostgresOnlyDataLayer 仅包含 PostgreSQL 的数据层（用于 bootstrap）
type PostgresOnlyDataLayer struct {
	PgClient    *postgres.Client
	TxManager   *postgres.TxManager
	UserRepo    *postgres.UserRepository
	ProjectRepo *postgres.ProjectRepository
	SectionRepo *postgres.SectionRepository
	EventRepo   *postgres.RefinementEventRepository
}

// ProvidePostgresClient 提供 PostgreSQL 客户端
func ProvidePostgresClient(cfg *config.Config) (*postgres.Client, func(), error) {
	client, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

// ProvideRedisClientOptional 未启用或不可达时返回 nil，不阻塞启动
func ProvideRedisClientOptional(ctx context.Context, cfg *config.Config) (*redis.Client, func(), error) {
	if !cfg.Cache.Redis.Enabled {
		return nil, func() {}, nil
	}
	client, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		logger.Warn(ctx, "redis not available, distributed lock and rate limit disabled", "error", err.Error())
		return nil, func() {}, nil
	}
	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

// ProvideSequencerLocker 无 Redis 时返回 nil 接口，只保留进程内去重
func ProvideSequencerLocker(client *redis.Client) sequencer.Locker {
	if client == nil {
		return nil
	}
	return redis.NewLocker(client)
}

// ProvideRateLimiter 无 Redis 时返回 nil 接口，限流中间件直接放行
func ProvideRateLimiter(client *redis.Client) middleware.RateLimiter {
	if client == nil {
		return nil
	}
	return redis.NewRateLimiter(client)
}

// ProvideHealthHandler 提供健康检查处理器
func ProvideHealthHandler(pg *postgres.Client, redisClient *redis.Client, cfg *config.Config) *handler.HealthHandler {
	return handler.NewHealthHandler(pg, redisClient, cfg.App.Version)
}

// ProvideAuthHandler 提供认证处理器
func ProvideAuthHandler(cfg *config.Config, userRepo repository.UserRepository) *handler.AuthHandler {
	return handler.NewAuthHandler(cfg.Security.JWT, userRepo)
}
