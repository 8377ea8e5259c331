package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/online-bookstore/internal/domain/cart"
	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
)

// cartRepository 购物车仓储实现(MySQL)
// 教学要点:
// 1. 购物车与明细分开写入,明细通过SaveItem/DeleteItem单独维护
// 2. LockByUserID使用SELECT ... FOR UPDATE,串行化同一用户的加购
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(db *gorm.DB) cart.Repository {
	return &cartRepository{db: db}
}

func (r *cartRepository) FindByUserID(ctx context.Context, userID uint) (*cart.ShoppingCart, error) {
	return r.find(getDB(ctx, r.db), userID)
}

func (r *cartRepository) LockByUserID(ctx context.Context, userID uint) (*cart.ShoppingCart, error) {
	return r.find(getDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}), userID)
}

func (r *cartRepository) find(db *gorm.DB, userID uint) (*cart.ShoppingCart, error) {
	var model ShoppingCartModel
	err := db.Scopes(active("shopping_carts")).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("cart_items.id ASC")
		}).
		Preload("Items.Book").
		Where("user_id = ?", userID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cart.ErrCartNotFound
		}
		return nil, apperrors.Wrap(err, "查询购物车失败")
	}
	return toCartEntity(&model), nil
}

// Create 创建空购物车
func (r *cartRepository) Create(ctx context.Context, c *cart.ShoppingCart) error {
	model := &ShoppingCartModel{
		UserID:    c.UserID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if err := getDB(ctx, r.db).Omit("Items").Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return cart.ErrCartDuplicate
		}
		return apperrors.Wrap(err, "创建购物车失败")
	}
	c.ID = model.ID
	return nil
}

// SaveItem ID为0时插入,否则只更新数量
func (r *cartRepository) SaveItem(ctx context.Context, item *cart.CartItem) error {
	db := getDB(ctx, r.db)

	if item.ID == 0 {
		model := &CartItemModel{
			ShoppingCartID: item.ShoppingCartID,
			BookID:         item.BookID,
			Quantity:       item.Quantity,
		}
		if err := db.Omit(clause.Associations).Create(model).Error; err != nil {
			if isDuplicateError(err) {
				return apperrors.ErrConflict.WithMessage("购物车中已有该图书")
			}
			return apperrors.Wrap(err, "添加购物车明细失败")
		}
		item.ID = model.ID
		return nil
	}

	result := db.Model(&CartItemModel{}).
		Where("id = ?", item.ID).
		Update("quantity", item.Quantity)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新购物车明细失败")
	}
	return nil
}

// DeleteItem 删除明细(物理删除,明细不需要保留历史)
func (r *cartRepository) DeleteItem(ctx context.Context, itemID uint) error {
	result := getDB(ctx, r.db).Delete(&CartItemModel{}, itemID)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除购物车明细失败")
	}
	if result.RowsAffected == 0 {
		return cart.ErrCartItemNotFound
	}
	return nil
}

func toCartEntity(m *ShoppingCartModel) *cart.ShoppingCart {
	items := make([]cart.CartItem, len(m.Items))
	for i, it := range m.Items {
		items[i] = cart.CartItem{
			ID:             it.ID,
			ShoppingCartID: it.ShoppingCartID,
			BookID:         it.BookID,
			BookTitle:      it.Book.Title,
			Quantity:       it.Quantity,
		}
	}
	return &cart.ShoppingCart{
		ID:        m.ID,
		UserID:    m.UserID,
		Items:     items,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
