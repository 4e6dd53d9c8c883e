package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 需要 REDIS_ADDR 指向可用实例，否则跳过
func openTestClient(t *testing.T) *Client {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	rdb := goredis.NewClient(&goredis.Options{Addr: addr})
	require.NoError(t, rdb.Ping(context.Background()).Err())
	t.Cleanup(func() { _ = rdb.Close() })
	return NewClientFromRedis(rdb)
}

func TestKeyBuilders(t *testing.T) {
	assert.Equal(t, "ratelimit:u1:/v1/projects", BuildRateLimitKey("u1", "/v1/projects"))
	assert.Equal(t, "lock:sequencer:p1", BuildSequencerLockKey("p1"))
}

func TestLocker_AcquireRelease(t *testing.T) {
	c := openTestClient(t)
	ctx := context.Background()
	l := NewLocker(c)
	key := BuildSequencerLockKey(uuid.NewString())

	release, err := l.Acquire(ctx, key, time.Minute)
	require.NoError(t, err)

	_, err = l.Acquire(ctx, key, time.Minute)
	assert.ErrorIs(t, err, ErrLockHeld)

	require.NoError(t, release(ctx))

	release2, err := l.Acquire(ctx, key, time.Minute)
	require.NoError(t, err)
	require.NoError(t, release2(ctx))
}

func TestRateLimiter_Allow(t *testing.T) {
	c := openTestClient(t)
	ctx := context.Background()
	rl := NewRateLimiter(c)
	key := BuildRateLimitKey(uuid.NewString(), "test")
	t.Cleanup(func() { _ = rl.Reset(ctx, key) })

	for i := 0; i < 3; i++ {
		ok, err := rl.Allow(ctx, key, 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := rl.Allow(ctx, key, 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)
}
