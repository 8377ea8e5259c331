package category

import (
	"context"
	"time"

	"github.com/xiebiao/online-bookstore/internal/application"
	"github.com/xiebiao/online-bookstore/internal/domain/category"
)

// CategoryDTO 分类响应DTO
type CategoryDTO struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryRequest 创建/更新请求
type CategoryRequest struct {
	Name        string
	Description string
}

// ManageCategoryUseCase 分类增删改查
// 分类逻辑简单,不单独设领域服务,直接编排实体与仓储
type ManageCategoryUseCase struct {
	repo category.Repository
}

// NewManageCategoryUseCase 创建分类用例
func NewManageCategoryUseCase(repo category.Repository) *ManageCategoryUseCase {
	return &ManageCategoryUseCase{repo: repo}
}

func (uc *ManageCategoryUseCase) Create(ctx context.Context, req CategoryRequest) (*CategoryDTO, error) {
	c, err := category.NewCategory(req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toDTO(c), nil
}

func (uc *ManageCategoryUseCase) Get(ctx context.Context, id uint) (*CategoryDTO, error) {
	c, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDTO(c), nil
}

// Update 整体更新,分类不存在返回NotFound
func (uc *ManageCategoryUseCase) Update(ctx context.Context, id uint, req CategoryRequest) (*CategoryDTO, error) {
	c, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toDTO(c), nil
}

func (uc *ManageCategoryUseCase) Delete(ctx context.Context, id uint) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *ManageCategoryUseCase) List(ctx context.Context, p application.Pagination) (*application.PageResult[*CategoryDTO], error) {
	p = p.Normalize()
	list, total, err := uc.repo.List(ctx, p.Page, p.PageSize)
	if err != nil {
		return nil, err
	}

	out := make([]*CategoryDTO, len(list))
	for i, c := range list {
		out[i] = toDTO(c)
	}
	return application.NewPageResult(out, total, p), nil
}

func toDTO(c *category.Category) *CategoryDTO {
	return &CategoryDTO{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
