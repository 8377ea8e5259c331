package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/xiebiao/online-bookstore/internal/domain/book"
	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
)

// BookCache 图书详情缓存(Cache-Aside)
// Key设计：book:{id}，值为JSON
// 写操作由领域服务在更新/删除后调用Delete失效
type BookCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

var _ book.Cache = (*BookCache)(nil)

// NewBookCache 创建图书缓存，ttl<=0时使用默认值
func NewBookCache(client redis.Cmdable, ttl time.Duration) *BookCache {
	if ttl <= 0 {
		ttl = book.CacheTTL
	}
	return &BookCache{client: client, ttl: ttl}
}

// cachedBook 缓存结构，与领域实体解耦
type cachedBook struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	Author      string          `json:"author"`
	ISBN        string          `json:"isbn"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	CoverImage  string          `json:"cover_image"`
	CategoryIDs []uint          `json:"category_ids"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func bookKey(id uint) string {
	return fmt.Sprintf("book:%d", id)
}

// Get 未命中返回(nil, nil)
func (c *BookCache) Get(ctx context.Context, id uint) (*book.Book, error) {
	data, err := c.client.Get(ctx, bookKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, apperrors.ErrRedisError.WithMessage("读取图书缓存失败").WithErr(err)
	}

	var cb cachedBook
	if err := json.Unmarshal(data, &cb); err != nil {
		return nil, apperrors.Wrap(err, "解析图书缓存失败")
	}
	return &book.Book{
		ID:          cb.ID,
		Title:       cb.Title,
		Author:      cb.Author,
		ISBN:        cb.ISBN,
		Price:       cb.Price,
		Description: cb.Description,
		CoverImage:  cb.CoverImage,
		CategoryIDs: cb.CategoryIDs,
		CreatedAt:   cb.CreatedAt,
		UpdatedAt:   cb.UpdatedAt,
	}, nil
}

func (c *BookCache) Set(ctx context.Context, b *book.Book) error {
	data, err := json.Marshal(cachedBook{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		ISBN:        b.ISBN,
		Price:       b.Price,
		Description: b.Description,
		CoverImage:  b.CoverImage,
		CategoryIDs: b.CategoryIDs,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	})
	if err != nil {
		return apperrors.Wrap(err, "序列化图书缓存失败")
	}
	if err := c.client.Set(ctx, bookKey(b.ID), data, c.ttl).Err(); err != nil {
		return apperrors.ErrRedisError.WithMessage("写入图书缓存失败").WithErr(err)
	}
	return nil
}

func (c *BookCache) Delete(ctx context.Context, id uint) error {
	if err := c.client.Del(ctx, bookKey(id)).Err(); err != nil {
		return apperrors.ErrRedisError.WithMessage("删除图书缓存失败").WithErr(err)
	}
	return nil
}
