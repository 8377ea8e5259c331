package mysql

import (
	"time"

	"github.com/shopspring/decimal"
)

// 设计说明:
// 1. 这是infrastructure层的数据模型,包含GORM tag
// 2. domain层实体不依赖GORM,Repository负责两者之间的转换
// 3. 软删除统一使用is_deleted列,读操作通过active作用域过滤
// 4. 金额使用decimal(10,2)存储,避免浮点误差

// RoleModel 角色
type RoleModel struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;size:32;not null;comment:角色名"`
}

func (RoleModel) TableName() string { return "roles" }

// UserModel 用户
type UserModel struct {
	ID              uint      `gorm:"primaryKey"`
	Email           string    `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Password        string    `gorm:"size:255;not null;comment:密码(bcrypt加密)"`
	FirstName       string    `gorm:"size:50;not null"`
	LastName        string    `gorm:"size:50;not null"`
	ShippingAddress string    `gorm:"size:255"`
	IsDeleted       bool      `gorm:"not null;default:false"`
	CreatedAt       time.Time `gorm:"comment:创建时间"`
	UpdatedAt       time.Time `gorm:"comment:更新时间"`
}

func (UserModel) TableName() string { return "users" }

// UserRoleModel 用户-角色关联
type UserRoleModel struct {
	UserID uint `gorm:"primaryKey"`
	RoleID uint `gorm:"primaryKey"`
}

func (UserRoleModel) TableName() string { return "users_roles" }

// CategoryModel 分类
type CategoryModel struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"size:100;not null;comment:分类名"`
	Description string    `gorm:"size:500"`
	IsDeleted   bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (CategoryModel) TableName() string { return "categories" }

// BookModel 图书
// title/author索引用于IN查询
type BookModel struct {
	ID          uint            `gorm:"primaryKey"`
	Title       string          `gorm:"index:idx_title;size:200;not null;comment:书名"`
	Author      string          `gorm:"index:idx_author;size:100;not null;comment:作者"`
	ISBN        string          `gorm:"column:isbn;uniqueIndex;size:13;not null;comment:ISBN"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null;comment:价格"`
	Description string          `gorm:"type:text"`
	CoverImage  string          `gorm:"size:500;comment:封面图片"`
	IsDeleted   bool            `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (BookModel) TableName() string { return "books" }

// BookCategoryModel 图书-分类关联
type BookCategoryModel struct {
	BookID     uint `gorm:"primaryKey"`
	CategoryID uint `gorm:"primaryKey;index"`
}

func (BookCategoryModel) TableName() string { return "books_categories" }

// ShoppingCartModel 购物车,每个用户一个
type ShoppingCartModel struct {
	ID        uint            `gorm:"primaryKey"`
	UserID    uint            `gorm:"uniqueIndex;not null"`
	Items     []CartItemModel `gorm:"foreignKey:ShoppingCartID"`
	IsDeleted bool            `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ShoppingCartModel) TableName() string { return "shopping_carts" }

// CartItemModel 购物车明细,同一购物车中每本书只有一行
// 明细没有软删除标记,移除时物理删除
type CartItemModel struct {
	ID             uint      `gorm:"primaryKey"`
	ShoppingCartID uint      `gorm:"uniqueIndex:idx_cart_book;not null"`
	BookID         uint      `gorm:"uniqueIndex:idx_cart_book;not null"`
	Book           BookModel `gorm:"foreignKey:BookID"` // 仅用于预加载书名
	Quantity       int       `gorm:"not null"`
}

func (CartItemModel) TableName() string { return "cart_items" }

// OrderModel 订单
// 教学要点:
// 1. 与OrderItemModel是一对多关系
// 2. OrderNo有唯一索引(业务主键)
type OrderModel struct {
	ID              uint             `gorm:"primaryKey"`
	OrderNo         string           `gorm:"uniqueIndex;size:32;not null;comment:订单号"`
	UserID          uint             `gorm:"index;not null;comment:买家用户ID"`
	Total           decimal.Decimal  `gorm:"type:decimal(12,2);not null;comment:订单总金额"`
	Status          string           `gorm:"index;size:16;not null;comment:PENDING/COMPLETED/DELIVERED"`
	OrderDate       time.Time        `gorm:"index;not null;comment:下单时间"`
	ShippingAddress string           `gorm:"size:255;not null"`
	Items           []OrderItemModel `gorm:"foreignKey:OrderID"`
	IsDeleted       bool             `gorm:"not null;default:false"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (OrderModel) TableName() string { return "orders" }

// OrderItemModel 订单明细
// Price为下单时单价快照;明细随订单一起可见,订单软删除后不再单独查询明细
type OrderItemModel struct {
	ID       uint            `gorm:"primaryKey"`
	OrderID  uint            `gorm:"index;not null;comment:订单ID"`
	BookID   uint            `gorm:"index;not null;comment:图书ID"`
	Quantity int             `gorm:"not null;comment:购买数量"`
	Price    decimal.Decimal `gorm:"type:decimal(10,2);not null;comment:下单时单价"`
}

func (OrderItemModel) TableName() string { return "order_items" }
