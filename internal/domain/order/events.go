package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// 事件路由键
const (
	RoutingKeyOrderPlaced        = "order.placed"
	RoutingKeyOrderStatusUpdated = "order.status_updated"
)

// OrderPlaced 下单成功事件
type OrderPlaced struct {
	OrderID    uint            `json:"order_id"`
	OrderNo    string          `json:"order_no"`
	UserID     uint            `json:"user_id"`
	Total      decimal.Decimal `json:"total"`
	ItemCount  int             `json:"item_count"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// NewOrderPlaced 由已持久化的订单构造事件
func NewOrderPlaced(o *Order) OrderPlaced {
	return OrderPlaced{
		OrderID:    o.ID,
		OrderNo:    o.OrderNo,
		UserID:     o.UserID,
		Total:      o.Total,
		ItemCount:  len(o.Items),
		OccurredAt: time.Now(),
	}
}

// OrderStatusUpdated 订单状态变更事件
type OrderStatusUpdated struct {
	OrderID    uint      `json:"order_id"`
	From       Status    `json:"from"`
	To         Status    `json:"to"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher 订单事件发布接口
// 发布在事务提交之后进行,失败不影响订单本身
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, evt OrderPlaced) error
	PublishOrderStatusUpdated(ctx context.Context, evt OrderStatusUpdated) error
}
