package book

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 领域服务封装业务规则校验与缓存一致性
// 2. 不依赖具体的Repository实现(依赖倒置)
type Service interface {
	// CreateBook 创建图书
	// 业务规则:ISBN为13位数字且不重复,价格>=0
	CreateBook(ctx context.Context, params BookParams) (*Book, error)

	// GetBook 获取图书详情(优先读缓存)
	GetBook(ctx context.Context, id uint) (*Book, error)

	// UpdateBook 整体更新图书,更新后删除缓存
	UpdateBook(ctx context.Context, id uint, params BookParams) (*Book, error)

	// DeleteBook 软删除图书,删除后删除缓存
	DeleteBook(ctx context.Context, id uint) error

	// ListBooks 分页查询
	ListBooks(ctx context.Context, page, pageSize int) ([]*Book, int64, error)

	// SearchBooks 按title/author集合搜索
	SearchBooks(ctx context.Context, params SearchParams, page, pageSize int) ([]*Book, int64, error)

	// ListBooksByCategory 分页查询分类下的图书
	ListBooksByCategory(ctx context.Context, categoryID uint, page, pageSize int) ([]*Book, int64, error)
}

// BookParams 创建/更新图书的输入
type BookParams struct {
	Title       string
	Author      string
	ISBN        string
	Price       decimal.Decimal
	Description string
	CoverImage  string
	CategoryIDs []uint
}

type service struct {
	repo    Repository
	cache   Cache
	builder *SpecificationBuilder
}

// NewService 创建图书领域服务
func NewService(repo Repository, cache Cache, builder *SpecificationBuilder) Service {
	if cache == nil {
		cache = NoopCache{}
	}
	return &service{repo: repo, cache: cache, builder: builder}
}

// CreateBook 创建图书
// ISBN唯一性由数据库UNIQUE索引保证,Repository转换为ErrISBNDuplicate
func (s *service) CreateBook(ctx context.Context, p BookParams) (*Book, error) {
	b, err := NewBook(p.Title, p.Author, p.ISBN, p.Price, p.Description, p.CoverImage, p.CategoryIDs)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// GetBook 获取图书详情
// 缓存读写失败只记录日志,降级为直接查库
func (s *service) GetBook(ctx context.Context, id uint) (*Book, error) {
	cached, err := s.cache.Get(ctx, id)
	if err != nil {
		slog.WarnContext(ctx, "读取图书缓存失败", "book_id", id, "error", err)
	}
	if cached != nil {
		return cached, nil
	}

	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, b); err != nil {
		slog.WarnContext(ctx, "写入图书缓存失败", "book_id", id, "error", err)
	}
	return b, nil
}

// UpdateBook 更新图书
func (s *service) UpdateBook(ctx context.Context, id uint, p BookParams) (*Book, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := b.Update(p.Title, p.Author, p.ISBN, p.Price, p.Description, p.CoverImage, p.CategoryIDs); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	s.evict(ctx, id)
	return b, nil
}

// DeleteBook 软删除图书
func (s *service) DeleteBook(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.evict(ctx, id)
	return nil
}

// ListBooks 分页查询图书列表
func (s *service) ListBooks(ctx context.Context, page, pageSize int) ([]*Book, int64, error) {
	return s.repo.List(ctx, page, pageSize)
}

// SearchBooks 搜索图书
func (s *service) SearchBooks(ctx context.Context, params SearchParams, page, pageSize int) ([]*Book, int64, error) {
	spec, err := s.builder.Build(params)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.FindBySpecification(ctx, spec, page, pageSize)
}

// ListBooksByCategory 分类下的图书
func (s *service) ListBooksByCategory(ctx context.Context, categoryID uint, page, pageSize int) ([]*Book, int64, error) {
	return s.repo.FindByCategoryID(ctx, categoryID, page, pageSize)
}

func (s *service) evict(ctx context.Context, id uint) {
	if err := s.cache.Delete(ctx, id); err != nil {
		slog.WarnContext(ctx, "删除图书缓存失败", "book_id", id, "error", err)
	}
}
