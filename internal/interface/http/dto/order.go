package dto

// PlaceOrderRequest 下单请求（订单内容来自当前用户的购物车）
type PlaceOrderRequest struct {
	ShippingAddress string `json:"shipping_address" binding:"required,max=500" example:"Kyiv, Khreshchatyk 1"`
}

// UpdateOrderStatusRequest 修改订单状态
// 状态值由领域层解析（PENDING | COMPLETED | DELIVERED，大小写不敏感）
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required" example:"DELIVERED"`
}
