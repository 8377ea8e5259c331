package book

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/xiebiao/online-bookstore/internal/application"
	"github.com/xiebiao/online-bookstore/internal/domain/book"
	"github.com/xiebiao/online-bookstore/internal/domain/category"
	"github.com/xiebiao/online-bookstore/pkg/metrics"
	"github.com/xiebiao/online-bookstore/pkg/tracing"
)

type mockBookService struct {
	mock.Mock
}

func (m *mockBookService) CreateBook(ctx context.Context, p book.BookParams) (*book.Book, error) {
	args := m.Called(ctx, p)
	if b, ok := args.Get(0).(*book.Book); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookService) GetBook(ctx context.Context, id uint) (*book.Book, error) {
	args := m.Called(ctx, id)
	if b, ok := args.Get(0).(*book.Book); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookService) UpdateBook(ctx context.Context, id uint, p book.BookParams) (*book.Book, error) {
	args := m.Called(ctx, id, p)
	if b, ok := args.Get(0).(*book.Book); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookService) DeleteBook(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockBookService) ListBooks(ctx context.Context, page, pageSize int) ([]*book.Book, int64, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]*book.Book), args.Get(1).(int64), args.Error(2)
}

func (m *mockBookService) SearchBooks(ctx context.Context, p book.SearchParams, page, pageSize int) ([]*book.Book, int64, error) {
	args := m.Called(ctx, p, page, pageSize)
	return args.Get(0).([]*book.Book), args.Get(1).(int64), args.Error(2)
}

func (m *mockBookService) ListBooksByCategory(ctx context.Context, categoryID uint, page, pageSize int) ([]*book.Book, int64, error) {
	args := m.Called(ctx, categoryID, page, pageSize)
	return args.Get(0).([]*book.Book), args.Get(1).(int64), args.Error(2)
}

// stubCategories 只实现用例用到的方法
type stubCategories struct {
	category.Repository
	existing map[uint]bool
}

func (s stubCategories) CountByIDs(_ context.Context, ids []uint) (int64, error) {
	var n int64
	for _, id := range ids {
		if s.existing[id] {
			n++
		}
	}
	return n, nil
}

func (s stubCategories) FindByID(_ context.Context, id uint) (*category.Category, error) {
	if s.existing[id] {
		return &category.Category{ID: id}, nil
	}
	return nil, category.ErrCategoryNotFound
}

func TestManageBookUseCase_Create(t *testing.T) {
	ctx := context.Background()
	cats := stubCategories{existing: map[uint]bool{1: true}}
	req := BookRequest{Title: "Kobzar", Author: "Shevchenko", ISBN: "9780000000001",
		Price: decimal.RequireFromString("15.00"), CategoryIDs: []uint{1, 1}}

	t.Run("分类存在时创建成功", func(t *testing.T) {
		svc := new(mockBookService)
		svc.On("CreateBook", ctx, mock.Anything).
			Return(&book.Book{ID: 5, Title: "Kobzar", Price: req.Price, CategoryIDs: []uint{1}}, nil)

		dto, err := NewManageBookUseCase(svc, cats).Create(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, uint(5), dto.ID)
		assert.Equal(t, []uint{1}, dto.CategoryIDs)
	})

	t.Run("引用不存在的分类", func(t *testing.T) {
		svc := new(mockBookService)
		bad := req
		bad.CategoryIDs = []uint{1, 2}

		_, err := NewManageBookUseCase(svc, cats).Create(ctx, bad)
		assert.ErrorIs(t, err, category.ErrCategoryNotFound)
		svc.AssertNotCalled(t, "CreateBook", mock.Anything, mock.Anything)
	})
}

func TestListBooksUseCase_Search(t *testing.T) {
	ctx := context.Background()
	sr := tracetest.NewSpanRecorder()
	tracing.Install(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr)))

	svc := new(mockBookService)
	params := book.SearchParams{Titles: []string{"Kobzar"}, Authors: []string{"Shevchenko"}}
	svc.On("SearchBooks", mock.Anything, params, 1, application.DefaultPageSize).
		Return([]*book.Book{{ID: 1, Title: "Kobzar"}}, int64(1), nil)

	uc := NewListBooksUseCase(svc, stubCategories{})
	filtered := metrics.BookSearchesTotal.WithLabelValues("true")
	before := testutil.ToFloat64(filtered)

	res, err := uc.Search(ctx, SearchRequest{Titles: params.Titles, Authors: params.Authors})
	require.NoError(t, err)
	assert.Len(t, res.List, 1)
	assert.Equal(t, before+1, testutil.ToFloat64(filtered))

	spans := sr.Ended()
	require.NotEmpty(t, spans)
	assert.Equal(t, "SearchBooks", spans[len(spans)-1].Name())
}

func TestListBooksUseCase_ListByCategory_NotFound(t *testing.T) {
	svc := new(mockBookService)
	_, err := NewListBooksUseCase(svc, stubCategories{}).ListByCategory(context.Background(), 3, application.Pagination{})
	assert.ErrorIs(t, err, category.ErrCategoryNotFound)
	svc.AssertNotCalled(t, "ListBooksByCategory", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
