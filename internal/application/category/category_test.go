package category

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/online-bookstore/internal/application"
	"github.com/xiebiao/online-bookstore/internal/domain/category"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, c *category.Category) error {
	args := m.Called(ctx, c)
	c.ID = 1
	return args.Error(0)
}

func (m *mockRepository) FindByID(ctx context.Context, id uint) (*category.Category, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*category.Category); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) Update(ctx context.Context, c *category.Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepository) List(ctx context.Context, page, pageSize int) ([]*category.Category, int64, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]*category.Category), args.Get(1).(int64), args.Error(2)
}

func (m *mockRepository) CountByIDs(ctx context.Context, ids []uint) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func TestManageCategoryUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("创建", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("Create", ctx, mock.Anything).Return(nil)

		dto, err := NewManageCategoryUseCase(repo).Create(ctx, CategoryRequest{Name: " Poetry "})
		require.NoError(t, err)
		assert.Equal(t, "Poetry", dto.Name)
		assert.Equal(t, uint(1), dto.ID)
	})

	t.Run("名称为空不访问仓储", func(t *testing.T) {
		repo := new(mockRepository)
		_, err := NewManageCategoryUseCase(repo).Create(ctx, CategoryRequest{})
		assert.ErrorIs(t, err, category.ErrNameRequired)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("更新不存在的分类", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("FindByID", ctx, uint(9)).Return(nil, category.ErrCategoryNotFound)

		_, err := NewManageCategoryUseCase(repo).Update(ctx, 9, CategoryRequest{Name: "x"})
		assert.ErrorIs(t, err, category.ErrCategoryNotFound)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("列表使用规范化分页", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("List", ctx, 1, application.DefaultPageSize).
			Return([]*category.Category{{ID: 1, Name: "Poetry"}}, int64(1), nil)

		res, err := NewManageCategoryUseCase(repo).List(ctx, application.Pagination{})
		require.NoError(t, err)
		assert.Len(t, res.List, 1)
		assert.Equal(t, int64(1), res.Total)
	})
}
