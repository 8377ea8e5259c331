package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/online-bookstore/internal/domain/category"
	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
)

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓储
func NewCategoryRepository(db *gorm.DB) category.Repository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, c *category.Category) error {
	model := &CategoryModel{
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建分类失败")
	}
	c.ID = model.ID
	return nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id uint) (*category.Category, error) {
	var model CategoryModel
	err := getDB(ctx, r.db).Scopes(active("categories")).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, category.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(err, "查询分类失败")
	}
	return toCategoryEntity(&model), nil
}

func (r *categoryRepository) Update(ctx context.Context, c *category.Category) error {
	err := getDB(ctx, r.db).Model(&CategoryModel{}).
		Scopes(active("categories")).
		Where("id = ?", c.ID).
		Updates(map[string]any{
			"name":        c.Name,
			"description": c.Description,
			"updated_at":  c.UpdatedAt,
		}).Error
	if err != nil {
		return apperrors.Wrap(err, "更新分类失败")
	}
	return nil
}

// Delete 软删除分类
// 图书与分类的关联保留,分类不可见后不会出现在任何查询结果中
func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Model(&CategoryModel{}).
		Scopes(active("categories")).
		Where("id = ?", id).
		Update("is_deleted", true)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除分类失败")
	}
	if result.RowsAffected == 0 {
		return category.ErrCategoryNotFound
	}
	return nil
}

func (r *categoryRepository) List(ctx context.Context, page, pageSize int) ([]*category.Category, int64, error) {
	query := getDB(ctx, r.db).Model(&CategoryModel{}).Scopes(active("categories"))

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询分类总数失败")
	}

	var models []CategoryModel
	if err := query.Scopes(paginate(page, pageSize)).Order("id ASC").Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询分类列表失败")
	}

	out := make([]*category.Category, len(models))
	for i := range models {
		out[i] = toCategoryEntity(&models[i])
	}
	return out, total, nil
}

func (r *categoryRepository) CountByIDs(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var n int64
	err := getDB(ctx, r.db).Model(&CategoryModel{}).
		Scopes(active("categories")).
		Where("id IN ?", ids).
		Count(&n).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "查询分类失败")
	}
	return n, nil
}

func toCategoryEntity(m *CategoryModel) *category.Category {
	return &category.Category{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		IsDeleted:   m.IsDeleted,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
