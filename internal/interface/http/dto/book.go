package dto

import "github.com/shopspring/decimal"

// BookRequest 创建/更新图书请求
// 说明：
// - price接受数字或字符串（"19.99"），统一解析为decimal，避免浮点误差
// - ISBN格式（13位数字）与价格非负由领域层校验，这里只校验必填与长度
type BookRequest struct {
	Title       string           `json:"title" binding:"required,max=255" example:"Kobzar"`
	Author      string           `json:"author" binding:"required,max=255" example:"Taras Shevchenko"`
	ISBN        string           `json:"isbn" binding:"required" example:"9786175851234"`
	Price       *decimal.Decimal `json:"price" binding:"required" swaggertype:"string" example:"19.99"`
	Description string           `json:"description" binding:"max=5000"`
	CoverImage  string           `json:"cover_image" binding:"omitempty,max=500" example:"https://example.com/cover.jpg"`
	CategoryIDs []uint           `json:"category_ids"`
}

// SearchBooksQuery 图书搜索参数
// titles/authors可重复传参，也可以逗号分隔：?titles=a,b&authors=x
type SearchBooksQuery struct {
	Titles  []string `form:"titles"`
	Authors []string `form:"authors"`
	PageQuery
}
