package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/online-bookstore/internal/domain/book"
	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
)

// newTestClient 需要真实Redis，未设置REDIS_ADDR时跳过
func newTestClient(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR未设置，跳过Redis集成测试")
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	require.NoError(t, client.Ping(context.Background()).Err())
	t.Cleanup(func() {
		_ = client.FlushDB(context.Background()).Err()
		_ = client.Close()
	})
	return client
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "session:7", sessionKey(7))
	assert.Equal(t, "blacklist:abc", blacklistKey("abc"))
	assert.Equal(t, "book:42", bookKey(42))
}

func TestNewBookCache_DefaultTTL(t *testing.T) {
	c := NewBookCache(nil, 0)
	assert.Equal(t, book.CacheTTL, c.ttl)
}

func TestBookCache(t *testing.T) {
	ctx := context.Background()
	cache := NewBookCache(newTestClient(t), time.Minute)

	t.Run("未命中返回nil", func(t *testing.T) {
		b, err := cache.Get(ctx, 404)
		require.NoError(t, err)
		assert.Nil(t, b)
	})

	t.Run("写入后读取,价格精度不丢失", func(t *testing.T) {
		b := &book.Book{ID: 1, Title: "Kobzar", Author: "Shevchenko", ISBN: "9780000000001",
			Price: decimal.RequireFromString("19.99"), CategoryIDs: []uint{1, 2}}
		require.NoError(t, cache.Set(ctx, b))

		got, err := cache.Get(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "19.99", got.Price.String())
		assert.Equal(t, []uint{1, 2}, got.CategoryIDs)

		require.NoError(t, cache.Delete(ctx, 1))
		got, err = cache.Get(ctx, 1)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestSessionStore(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(newTestClient(t))

	t.Run("会话保存与删除", func(t *testing.T) {
		now := time.Now().Truncate(time.Second)
		require.NoError(t, store.SaveSession(ctx, Session{UserID: 7, Email: "a@b.com", LoginAt: now}, time.Minute))

		sess, err := store.GetSession(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, "a@b.com", sess.Email)
		assert.True(t, now.Equal(sess.LoginAt))

		require.NoError(t, store.DeleteSession(ctx, 7))
		_, err = store.GetSession(ctx, 7)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("黑名单", func(t *testing.T) {
		require.NoError(t, store.AddToBlacklist(ctx, "tok", time.Minute))

		in, err := store.IsInBlacklist(ctx, "tok")
		require.NoError(t, err)
		assert.True(t, in)

		in, err = store.IsInBlacklist(ctx, "other")
		require.NoError(t, err)
		assert.False(t, in)
	})
}
