package dto

// AddCartItemRequest 加入购物车
type AddCartItemRequest struct {
	BookID   uint `json:"book_id" binding:"required,min=1" example:"1"`
	Quantity int  `json:"quantity" binding:"required,min=1,max=999" example:"2"`
}

// UpdateCartItemRequest 修改购物车明细数量
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1,max=999" example:"3"`
}
