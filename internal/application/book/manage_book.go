package book

import (
	"context"

	"github.com/xiebiao/online-bookstore/internal/domain/book"
	"github.com/xiebiao/online-bookstore/internal/domain/category"
)

// ManageBookUseCase 图书维护用例(管理员)
// 设计说明:
// 1. 应用层负责跨聚合校验:图书引用的分类必须存在
// 2. 单聚合内的业务规则(ISBN格式、价格)由领域服务负责
type ManageBookUseCase struct {
	bookService  book.Service
	categoryRepo category.Repository
}

// NewManageBookUseCase 创建图书维护用例
func NewManageBookUseCase(bookService book.Service, categoryRepo category.Repository) *ManageBookUseCase {
	return &ManageBookUseCase{bookService: bookService, categoryRepo: categoryRepo}
}

// Create 创建图书
func (uc *ManageBookUseCase) Create(ctx context.Context, req BookRequest) (*BookDTO, error) {
	if err := uc.checkCategories(ctx, req.CategoryIDs); err != nil {
		return nil, err
	}
	b, err := uc.bookService.CreateBook(ctx, req.params())
	if err != nil {
		return nil, err
	}
	return toBookDTO(b), nil
}

// Get 图书详情
func (uc *ManageBookUseCase) Get(ctx context.Context, id uint) (*BookDTO, error) {
	b, err := uc.bookService.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}
	return toBookDTO(b), nil
}

// Update 整体更新图书
func (uc *ManageBookUseCase) Update(ctx context.Context, id uint, req BookRequest) (*BookDTO, error) {
	if err := uc.checkCategories(ctx, req.CategoryIDs); err != nil {
		return nil, err
	}
	b, err := uc.bookService.UpdateBook(ctx, id, req.params())
	if err != nil {
		return nil, err
	}
	return toBookDTO(b), nil
}

// Delete 软删除图书
func (uc *ManageBookUseCase) Delete(ctx context.Context, id uint) error {
	return uc.bookService.DeleteBook(ctx, id)
}

// checkCategories 引用的分类必须全部存在且未删除
func (uc *ManageBookUseCase) checkCategories(ctx context.Context, ids []uint) error {
	ids = dedupe(ids)
	if len(ids) == 0 {
		return nil
	}
	n, err := uc.categoryRepo.CountByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if n != int64(len(ids)) {
		return category.ErrCategoryNotFound.WithMessage("部分分类不存在")
	}
	return nil
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
