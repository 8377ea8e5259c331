package book

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/online-bookstore/internal/domain/book"
)

// BookDTO 图书响应DTO
// 说明:不直接返回领域实体,领域模型变更不影响API契约
type BookDTO struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	Author      string          `json:"author"`
	ISBN        string          `json:"isbn"`
	Price       decimal.Decimal `json:"price" swaggertype:"string" example:"19.99"`
	Description string          `json:"description"`
	CoverImage  string          `json:"cover_image"`
	CategoryIDs []uint          `json:"category_ids"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// BookRequest 创建/更新请求
type BookRequest struct {
	Title       string
	Author      string
	ISBN        string
	Price       decimal.Decimal
	Description string
	CoverImage  string
	CategoryIDs []uint
}

func (r BookRequest) params() book.BookParams {
	return book.BookParams{
		Title:       r.Title,
		Author:      r.Author,
		ISBN:        r.ISBN,
		Price:       r.Price,
		Description: r.Description,
		CoverImage:  r.CoverImage,
		CategoryIDs: r.CategoryIDs,
	}
}

func toBookDTO(b *book.Book) *BookDTO {
	ids := b.CategoryIDs
	if ids == nil {
		ids = []uint{}
	}
	return &BookDTO{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		ISBN:        b.ISBN,
		Price:       b.Price,
		Description: b.Description,
		CoverImage:  b.CoverImage,
		CategoryIDs: ids,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func toBookDTOs(books []*book.Book) []*BookDTO {
	out := make([]*BookDTO, len(books))
	for i, b := range books {
		out[i] = toBookDTO(b)
	}
	return out
}
