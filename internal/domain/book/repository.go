package book

import (
	"context"
	"time"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 所有查询只返回未软删除的图书
// 3. 不存在(或已删除)时返回ErrBookNotFound
type Repository interface {
	// Create 创建图书(含分类关联)
	// ISBN重复时返回ErrISBNDuplicate
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	FindByID(ctx context.Context, id uint) (*Book, error)

	// Update 更新图书信息(含分类关联)
	Update(ctx context.Context, book *Book) error

	// Delete 软删除图书
	Delete(ctx context.Context, id uint) error

	// List 分页查询图书列表
	List(ctx context.Context, page, pageSize int) ([]*Book, int64, error)

	// FindBySpecification 按搜索条件分页查询
	FindBySpecification(ctx context.Context, spec Specification, page, pageSize int) ([]*Book, int64, error)

	// FindByCategoryID 分页查询某分类下的图书
	FindByCategoryID(ctx context.Context, categoryID uint, page, pageSize int) ([]*Book, int64, error)
}

// Cache 图书详情缓存
// Get未命中时返回(nil, nil)
type Cache interface {
	Get(ctx context.Context, id uint) (*Book, error)
	Set(ctx context.Context, book *Book) error
	Delete(ctx context.Context, id uint) error
}

// NoopCache 不缓存（缓存关闭或测试时使用）
type NoopCache struct{}

func (NoopCache) Get(context.Context, uint) (*Book, error) { return nil, nil }
func (NoopCache) Set(context.Context, *Book) error         { return nil }
func (NoopCache) Delete(context.Context, uint) error       { return nil }

// CacheTTL 默认缓存时长
const CacheTTL = 10 * time.Minute
