package application

// 分页参数默认值与上限
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Pagination 分页参数(页码从1开始)
type Pagination struct {
	Page     int
	PageSize int
}

// Normalize 参数默认值与范围限制
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

// PageResult 分页结果
type PageResult[T any] struct {
	List     []T
	Total    int64
	Page     int
	PageSize int
}

// NewPageResult 由已规范化的分页参数构造结果
func NewPageResult[T any](list []T, total int64, p Pagination) *PageResult[T] {
	if list == nil {
		list = []T{}
	}
	return &PageResult[T]{List: list, Total: total, Page: p.Page, PageSize: p.PageSize}
}
