package cart

import (
	"time"
)

// ShoppingCart 购物车(聚合根)
// 教学要点:
// 1. 每个用户最多一个购物车(user_id唯一索引),首次加购时创建
// 2. CartItem是聚合内的子实体,只能通过购物车修改
// 3. 同一本书在购物车中只有一条明细,重复加购累加数量
type ShoppingCart struct {
	ID        uint
	UserID    uint
	Items     []CartItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartItem 购物车明细
// BookTitle仅用于展示,由仓储查询时填充
type CartItem struct {
	ID             uint
	ShoppingCartID uint
	BookID         uint
	BookTitle      string
	Quantity       int
}

// NewShoppingCart 创建空购物车
func NewShoppingCart(userID uint) *ShoppingCart {
	now := time.Now()
	return &ShoppingCart{
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddBook 加购
// 已有该书时累加数量并返回已有明细,否则追加新明细
func (c *ShoppingCart) AddBook(bookID uint, quantity int) (*CartItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	c.UpdatedAt = time.Now()
	for i := range c.Items {
		if c.Items[i].BookID == bookID {
			c.Items[i].Quantity += quantity
			return &c.Items[i], nil
		}
	}

	c.Items = append(c.Items, CartItem{
		ShoppingCartID: c.ID,
		BookID:         bookID,
		Quantity:       quantity,
	})
	return &c.Items[len(c.Items)-1], nil
}

// Item 按明细ID查找
func (c *ShoppingCart) Item(itemID uint) (*CartItem, error) {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return &c.Items[i], nil
		}
	}
	return nil, ErrCartItemNotFound
}

// UpdateItemQuantity 覆盖明细数量
func (c *ShoppingCart) UpdateItemQuantity(itemID uint, quantity int) (*CartItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	item, err := c.Item(itemID)
	if err != nil {
		return nil, err
	}
	item.Quantity = quantity
	c.UpdatedAt = time.Now()
	return item, nil
}

// RemoveItem 移除明细
func (c *ShoppingCart) RemoveItem(itemID uint) error {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.UpdatedAt = time.Now()
			return nil
		}
	}
	return ErrCartItemNotFound
}

// IsOwnedBy 检查购物车是否属于指定用户
func (c *ShoppingCart) IsOwnedBy(userID uint) bool {
	return c.UserID == userID
}
