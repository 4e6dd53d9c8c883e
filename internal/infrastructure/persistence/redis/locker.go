package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
)

// ErrLockHeld 锁已被其他持有者占用
var ErrLockHeld = errors.New("lock is held by another owner")

// 仅当值匹配时删除，避免释放他人的锁
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker 基于 SET NX PX 的分布式锁
type Locker struct {
	client *Client
}

// NewLocker 创建分布式锁
func NewLocker(client *Client) *Locker {
	return &Locker{client: client}
}

// Acquire 获取锁，成功时返回释放函数
func (l *Locker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error) {
	ctx, span := tracer.Start(ctx, "lock.Acquire")
	span.SetAttributes(
		attribute.String("lock.key", key),
		attribute.Int64("lock.ttl_ms", ttl.Milliseconds()),
	)
	defer span.End()

	token := uuid.NewString()
	ok, err := l.client.rdb.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}
	if !ok {
		span.SetAttributes(attribute.Bool("lock.acquired", false))
		return nil, ErrLockHeld
	}
	span.SetAttributes(attribute.Bool("lock.acquired", true))

	release := func(ctx context.Context) error {
		if err := releaseScript.Run(ctx, l.client.rdb, []string{key}, token).Err(); err != nil && !IsNil(err) {
			return fmt.Errorf("failed to release lock %s: %w", key, err)
		}
		return nil
	}
	return release, nil
}

// BuildSequencerLockKey 构建项目生成锁键
func BuildSequencerLockKey(projectID string) string {
	return fmt.Sprintf("lock:sequencer:%s", projectID)
}
