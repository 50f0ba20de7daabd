package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/xiebiao/educonnect/internal/domain/book"
	"github.com/xiebiao/educonnect/pkg/metrics"
)

// BookCache 图书详情缓存（Cache-Aside）
// 更新或删除图书后删除缓存，下次查询重新加载。
// Redis异常只记录日志，按未命中处理。
type BookCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewBookCache 创建图书缓存
func NewBookCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *BookCache {
	return &BookCache{client: client, ttl: ttl, log: log.Named("book_cache")}
}

func (c *BookCache) Get(ctx context.Context, id uint) (b *book.Book, hit bool) {
	defer func() { metrics.ObserveBookCache(hit) }()

	val, err := c.client.Get(ctx, bookDetailKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("读取图书缓存失败", zap.Uint("book_id", id), zap.Error(err))
		}
		return nil, false
	}

	b = new(book.Book)
	if err := json.Unmarshal(val, b); err != nil {
		c.log.Warn("图书缓存反序列化失败", zap.Uint("book_id", id), zap.Error(err))
		return nil, false
	}
	return b, true
}

func (c *BookCache) Set(ctx context.Context, b *book.Book) {
	val, err := json.Marshal(b)
	if err != nil {
		c.log.Warn("图书缓存序列化失败", zap.Uint("book_id", b.ID), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, bookDetailKey(b.ID), val, c.ttl).Err(); err != nil {
		c.log.Warn("写入图书缓存失败", zap.Uint("book_id", b.ID), zap.Error(err))
	}
}

func (c *BookCache) Invalidate(ctx context.Context, id uint) {
	if err := c.client.Del(ctx, bookDetailKey(id)).Err(); err != nil {
		c.log.Warn("删除图书缓存失败", zap.Uint("book_id", id), zap.Error(err))
	}
}

func bookDetailKey(id uint) string {
	return fmt.Sprintf("book:detail:%d", id)
}
