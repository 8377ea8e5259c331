package order

import (
	"context"
)

// Repository 订单仓储接口(依赖倒置原则)
// 教学要点:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 支持事务操作(通过context传递事务)
// 3. 查询不返回软删除的订单
type Repository interface {
	// Create 创建订单(包含订单明细)
	// 订单和明细必须在同一事务中写入
	Create(ctx context.Context, order *Order) error

	// FindByID 根据ID查找订单(包含订单明细),不存在返回ErrOrderNotFound
	FindByID(ctx context.Context, id uint) (*Order, error)

	// UpdateStatus 只更新订单状态
	UpdateStatus(ctx context.Context, id uint, status Status) error

	// ListByUserID 分页查询用户的订单(按下单时间倒序,含明细)
	ListByUserID(ctx context.Context, userID uint, page, pageSize int) ([]*Order, int64, error)
}
