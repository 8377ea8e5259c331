package book

import (
	"context"
	"strconv"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/online-bookstore/internal/application"
	"github.com/xiebiao/online-bookstore/internal/domain/book"
	"github.com/xiebiao/online-bookstore/internal/domain/category"
	"github.com/xiebiao/online-bookstore/pkg/metrics"
	"github.com/xiebiao/online-bookstore/pkg/tracing"
)

const tracerName = "bookstore/application/book"

// ListBooksUseCase 图书列表查询用例
// 设计说明:
// 1. 普通列表、条件搜索、分类下图书三种入口共用分页规则
// 2. 搜索条件由领域层SpecificationBuilder组合,仓储负责翻译为SQL
type ListBooksUseCase struct {
	bookService  book.Service
	categoryRepo category.Repository
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookService book.Service, categoryRepo category.Repository) *ListBooksUseCase {
	metrics.InitMetrics()
	return &ListBooksUseCase{bookService: bookService, categoryRepo: categoryRepo}
}

// List 分页查询全部未删除图书
func (uc *ListBooksUseCase) List(ctx context.Context, p application.Pagination) (*application.PageResult[*BookDTO], error) {
	p = p.Normalize()
	books, total, err := uc.bookService.ListBooks(ctx, p.Page, p.PageSize)
	if err != nil {
		return nil, err
	}
	return application.NewPageResult(toBookDTOs(books), total, p), nil
}

// SearchRequest 搜索请求
// titles/authors均为可选,同一字段多个值为OR,不同字段为AND
type SearchRequest struct {
	Titles  []string
	Authors []string
	application.Pagination
}

// Search 条件搜索
func (uc *ListBooksUseCase) Search(ctx context.Context, req SearchRequest) (*application.PageResult[*BookDTO], error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "SearchBooks",
		attribute.Int("search.titles", len(req.Titles)),
		attribute.Int("search.authors", len(req.Authors)),
	)
	defer span.End()

	p := req.Pagination.Normalize()
	filtered := len(req.Titles) > 0 || len(req.Authors) > 0
	metrics.IncCounterVec(metrics.BookSearchesTotal, map[string]string{"filtered": strconv.FormatBool(filtered)})

	books, total, err := uc.bookService.SearchBooks(ctx,
		book.SearchParams{Titles: req.Titles, Authors: req.Authors}, p.Page, p.PageSize)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int64("search.total", total))
	return application.NewPageResult(toBookDTOs(books), total, p), nil
}

// ListByCategory 分类下的图书,分类不存在返回NotFound
func (uc *ListBooksUseCase) ListByCategory(ctx context.Context, categoryID uint, p application.Pagination) (*application.PageResult[*BookDTO], error) {
	if _, err := uc.categoryRepo.FindByID(ctx, categoryID); err != nil {
		return nil, err
	}

	p = p.Normalize()
	books, total, err := uc.bookService.ListBooksByCategory(ctx, categoryID, p.Page, p.PageSize)
	if err != nil {
		return nil, err
	}
	return application.NewPageResult(toBookDTOs(books), total, p), nil
}
