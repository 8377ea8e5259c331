package category

import (
	"context"
)

// Repository 分类仓储接口
// 所有查询只返回未软删除的分类
type Repository interface {
	Create(ctx context.Context, c *Category) error

	// FindByID 不存在(或已删除)时返回ErrCategoryNotFound
	FindByID(ctx context.Context, id uint) (*Category, error)

	Update(ctx context.Context, c *Category) error

	// Delete 软删除
	Delete(ctx context.Context, id uint) error

	List(ctx context.Context, page, pageSize int) ([]*Category, int64, error)

	// CountByIDs 统计ids中存在且未删除的分类数量(用于校验图书的分类引用)
	CountByIDs(ctx context.Context, ids []uint) (int64, error)
}
