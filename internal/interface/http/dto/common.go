package dto

import "github.com/xiebiao/online-bookstore/internal/application"

// PageQuery 分页查询参数
// 缺省或越界的值由应用层规范化（默认20条，最多100条）
type PageQuery struct {
	Page     int `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1" example:"20"`
}

// ToPagination 转换为应用层分页参数
func (q PageQuery) ToPagination() application.Pagination {
	return application.Pagination{Page: q.Page, PageSize: q.PageSize}
}

// IDUri 路径中的资源ID
type IDUri struct {
	ID uint `uri:"id" binding:"required,min=1"`
}

// ItemUri 订单明细路径参数
type ItemUri struct {
	ID     uint `uri:"id" binding:"required,min=1"`
	ItemID uint `uri:"itemId" binding:"required,min=1"`
}
