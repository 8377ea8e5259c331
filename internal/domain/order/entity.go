package order

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status 订单状态
// 教学要点:
// 1. 使用string存储(与API返回值一致,便于排查)
// 2. 未定义状态流转表,任意状态之间都允许更新
type Status string

const (
	StatusPending   Status = "PENDING"   // 待处理
	StatusCompleted Status = "COMPLETED" // 已完成
	StatusDelivered Status = "DELIVERED" // 已送达
)

// ParseStatus 解析状态字符串(忽略大小写和首尾空白)
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusPending, StatusCompleted, StatusDelivered:
		return st, nil
	default:
		return "", ErrInvalidStatus
	}
}

// Order 订单实体(聚合根)
// 教学要点:
// 1. Order是聚合根,OrderItem是子实体
// 2. Total冗余存储,创建时由明细计算,此后不再随图书价格变化
// 3. 创建后只允许修改Status
type Order struct {
	ID              uint
	OrderNo         string // 订单号(业务主键,全局唯一)
	UserID          uint
	Total           decimal.Decimal
	Status          Status
	OrderDate       time.Time
	ShippingAddress string
	Items           []OrderItem
	IsDeleted       bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderItem 订单明细
// Price是下单时的单价快照,与图书后续改价无关
type OrderItem struct {
	ID       uint
	OrderID  uint
	BookID   uint
	Quantity int
	Price    decimal.Decimal
}

// Subtotal 小计 = 单价 × 数量
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// NewOrder 创建新订单(工厂方法)
// 教学要点:
// 1. Total由明细精确计算(decimal,无浮点误差)
// 2. 初始状态为PENDING,下单时间为当前时间
// 3. 明细可以为空(空购物车下单得到总价为0的订单)
func NewOrder(orderNo string, userID uint, shippingAddress string, items []OrderItem) (*Order, error) {
	shippingAddress = strings.TrimSpace(shippingAddress)
	if shippingAddress == "" {
		return nil, ErrShippingAddressRequired
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		if item.Price.IsNegative() {
			return nil, ErrInvalidPrice
		}
	}

	now := time.Now()
	o := &Order{
		OrderNo:         orderNo,
		UserID:          userID,
		Status:          StatusPending,
		OrderDate:       now,
		ShippingAddress: shippingAddress,
		Items:           items,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	o.Total = o.CalculateTotal()
	return o, nil
}

// CalculateTotal 计算订单总金额 Σ(单价 × 数量)
func (o *Order) CalculateTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// UpdateStatus 覆盖订单状态
func (o *Order) UpdateStatus(status Status) {
	o.Status = status
	o.UpdatedAt = time.Now()
}

// Item 按明细ID查找
func (o *Order) Item(itemID uint) (*OrderItem, error) {
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			return &o.Items[i], nil
		}
	}
	return nil, ErrOrderItemNotFound
}

// IsOwnedBy 检查订单是否属于指定用户
// 教学要点:权限校验,防止用户访问他人订单
func (o *Order) IsOwnedBy(userID uint) bool {
	return o.UserID == userID
}
