package cart

import (
	"context"
	"errors"

	"github.com/xiebiao/online-bookstore/internal/application"
	"github.com/xiebiao/online-bookstore/internal/domain/book"
	"github.com/xiebiao/online-bookstore/internal/domain/cart"
	"github.com/xiebiao/online-bookstore/pkg/metrics"
)

// CartDTO 购物车响应
type CartDTO struct {
	ID     uint           `json:"id"`
	UserID uint           `json:"user_id"`
	Items  []*CartItemDTO `json:"items"`
}

// CartItemDTO 购物车明细
type CartItemDTO struct {
	ID        uint   `json:"id"`
	BookID    uint   `json:"book_id"`
	BookTitle string `json:"book_title"`
	Quantity  int    `json:"quantity"`
}

// CartUseCase 购物车用例
// 教学要点:
// 1. 购物车按user_id唯一,第一次加购时才创建
// 2. 加购是读-改-写:事务内先锁购物车行,再累加数量,防止并发丢失更新
// 3. 明细操作都先校验归属,不属于当前用户的明细按不存在处理
type CartUseCase struct {
	txManager application.TxManager
	cartRepo  cart.Repository
	bookRepo  book.Repository
}

// NewCartUseCase 创建购物车用例
func NewCartUseCase(txManager application.TxManager, cartRepo cart.Repository, bookRepo book.Repository) *CartUseCase {
	metrics.InitMetrics()
	return &CartUseCase{txManager: txManager, cartRepo: cartRepo, bookRepo: bookRepo}
}

// Get 查看购物车,尚未创建时返回空购物车
func (uc *CartUseCase) Get(ctx context.Context, userID uint) (*CartDTO, error) {
	c, err := uc.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, cart.ErrCartNotFound) {
			return &CartDTO{UserID: userID, Items: []*CartItemDTO{}}, nil
		}
		return nil, err
	}
	return toCartDTO(c), nil
}

// AddItemRequest 加购请求
type AddItemRequest struct {
	UserID   uint
	BookID   uint
	Quantity int
}

// AddItem 加购,同一本书重复加购时累加数量
func (uc *CartUseCase) AddItem(ctx context.Context, req AddItemRequest) (*CartDTO, error) {
	if req.Quantity <= 0 {
		return nil, cart.ErrInvalidQuantity
	}

	var result *cart.ShoppingCart
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		b, err := uc.bookRepo.FindByID(txCtx, req.BookID)
		if err != nil {
			return err
		}

		c, err := uc.lockOrCreate(txCtx, req.UserID)
		if err != nil {
			return err
		}

		item, err := c.AddBook(b.ID, req.Quantity)
		if err != nil {
			return err
		}
		if err := uc.cartRepo.SaveItem(txCtx, item); err != nil {
			return err
		}
		item.BookTitle = b.Title

		result = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.IncCounter(metrics.CartItemsAddedTotal)
	return toCartDTO(result), nil
}

// lockOrCreate 锁定用户购物车,不存在则创建
// 并发首次加购时唯一索引冲突的一方重新加锁读取对方创建的购物车
func (uc *CartUseCase) lockOrCreate(ctx context.Context, userID uint) (*cart.ShoppingCart, error) {
	c, err := uc.cartRepo.LockByUserID(ctx, userID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, cart.ErrCartNotFound) {
		return nil, err
	}

	c = cart.NewShoppingCart(userID)
	if err := uc.cartRepo.Create(ctx, c); err != nil {
		if errors.Is(err, cart.ErrCartDuplicate) {
			return uc.cartRepo.LockByUserID(ctx, userID)
		}
		return nil, err
	}
	return c, nil
}

// UpdateItemRequest 修改数量请求
type UpdateItemRequest struct {
	UserID   uint
	ItemID   uint
	Quantity int
}

// UpdateItem 覆盖明细数量
func (uc *CartUseCase) UpdateItem(ctx context.Context, req UpdateItemRequest) (*CartDTO, error) {
	if req.Quantity <= 0 {
		return nil, cart.ErrInvalidQuantity
	}

	var result *cart.ShoppingCart
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		c, err := uc.lockOwned(txCtx, req.UserID)
		if err != nil {
			return err
		}
		item, err := c.UpdateItemQuantity(req.ItemID, req.Quantity)
		if err != nil {
			return err
		}
		if err := uc.cartRepo.SaveItem(txCtx, item); err != nil {
			return err
		}
		result = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toCartDTO(result), nil
}

// RemoveItem 删除明细
func (uc *CartUseCase) RemoveItem(ctx context.Context, userID, itemID uint) error {
	return uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		c, err := uc.lockOwned(txCtx, userID)
		if err != nil {
			return err
		}
		if err := c.RemoveItem(itemID); err != nil {
			return err
		}
		return uc.cartRepo.DeleteItem(txCtx, itemID)
	})
}

// lockOwned 用户还没有购物车时,任何明细都视为不存在
func (uc *CartUseCase) lockOwned(ctx context.Context, userID uint) (*cart.ShoppingCart, error) {
	c, err := uc.cartRepo.LockByUserID(ctx, userID)
	if errors.Is(err, cart.ErrCartNotFound) {
		return nil, cart.ErrCartItemNotFound
	}
	return c, err
}

func toCartDTO(c *cart.ShoppingCart) *CartDTO {
	items := make([]*CartItemDTO, len(c.Items))
	for i, it := range c.Items {
		items[i] = &CartItemDTO{
			ID:        it.ID,
			BookID:    it.BookID,
			BookTitle: it.BookTitle,
			Quantity:  it.Quantity,
		}
	}
	return &CartDTO{ID: c.ID, UserID: c.UserID, Items: items}
}
