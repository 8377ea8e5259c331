package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/online-bookstore/internal/domain/order"
)

// OrderDTO 订单响应
type OrderDTO struct {
	ID              uint            `json:"id"`
	OrderNo         string          `json:"order_no"`
	UserID          uint            `json:"user_id"`
	Total           decimal.Decimal `json:"total" swaggertype:"string" example:"35.50"`
	Status          string          `json:"status" example:"PENDING"`
	OrderDate       time.Time       `json:"order_date"`
	ShippingAddress string          `json:"shipping_address"`
	Items           []*OrderItemDTO `json:"items"`
}

// OrderItemDTO 订单明细响应,Price为下单时单价
type OrderItemDTO struct {
	ID       uint            `json:"id"`
	OrderID  uint            `json:"order_id"`
	BookID   uint            `json:"book_id"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price" swaggertype:"string" example:"10.00"`
}

func toOrderDTO(o *order.Order) *OrderDTO {
	items := make([]*OrderItemDTO, len(o.Items))
	for i := range o.Items {
		items[i] = toOrderItemDTO(&o.Items[i])
	}
	return &OrderDTO{
		ID:              o.ID,
		OrderNo:         o.OrderNo,
		UserID:          o.UserID,
		Total:           o.Total,
		Status:          string(o.Status),
		OrderDate:       o.OrderDate,
		ShippingAddress: o.ShippingAddress,
		Items:           items,
	}
}

func toOrderItemDTO(it *order.OrderItem) *OrderItemDTO {
	return &OrderItemDTO{
		ID:       it.ID,
		OrderID:  it.OrderID,
		BookID:   it.BookID,
		Quantity: it.Quantity,
		Price:    it.Price,
	}
}
