package cart

import (
	"context"
)

// Repository 购物车仓储接口
// 教学要点:加购的读-改-写必须在事务内先LockByUserID锁住购物车行
type Repository interface {
	// FindByUserID 查询用户购物车(含明细),不存在返回ErrCartNotFound
	FindByUserID(ctx context.Context, userID uint) (*ShoppingCart, error)

	// LockByUserID SELECT ... FOR UPDATE锁定用户购物车(含明细)
	// 必须在事务中调用,不存在返回ErrCartNotFound
	LockByUserID(ctx context.Context, userID uint) (*ShoppingCart, error)

	// Create 创建空购物车,user_id冲突时返回ErrCartDuplicate
	Create(ctx context.Context, c *ShoppingCart) error

	// SaveItem 新增或更新明细(ID为0时新增并回填ID)
	SaveItem(ctx context.Context, item *CartItem) error

	// DeleteItem 删除明细
	DeleteItem(ctx context.Context, itemID uint) error
}
