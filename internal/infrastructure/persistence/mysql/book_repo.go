package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/online-bookstore/internal/domain/book"
	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
)

// searchColumns 可搜索字段 → 列名白名单
// 列名只来自此表,不拼接用户输入
var searchColumns = map[book.Field]string{
	book.FieldTitle:  "books.title",
	book.FieldAuthor: "books.author",
}

// bookRepository 图书仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 处理数据库特定的错误(如ISBN重复),转换为业务错误
// 4. 分类关联保存在books_categories表,与图书行同一事务写入
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)

	err := withTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		return replaceBookCategories(tx, model.ID, b.CategoryIDs)
	})
	if err != nil {
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return apperrors.Wrap(err, "创建图书失败")
	}

	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	db := getDB(ctx, r.db)

	var model BookModel
	err := db.Scopes(active("books")).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	books, err := r.withCategories(db, []BookModel{model})
	if err != nil {
		return nil, err
	}
	return books[0], nil
}

// Update 整体更新图书信息和分类关联
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)

	err := withTx(ctx, r.db, func(tx *gorm.DB) error {
		result := tx.Model(&BookModel{}).
			Scopes(active("books")).
			Where("id = ?", b.ID).
			Select("title", "author", "isbn", "price", "description", "cover_image", "updated_at").
			Updates(model)
		if result.Error != nil {
			return result.Error
		}
		// updated_at每次都会变化,0行即图书不存在或已删除
		if result.RowsAffected == 0 {
			return book.ErrBookNotFound
		}
		return replaceBookCategories(tx, b.ID, b.CategoryIDs)
	})
	if err != nil {
		if errors.Is(err, book.ErrBookNotFound) {
			return err
		}
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return apperrors.Wrap(err, "更新图书失败")
	}
	return nil
}

// Delete 软删除图书
// 已删除的图书再次删除返回ErrBookNotFound
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Model(&BookModel{}).
		Scopes(active("books")).
		Where("id = ?", id).
		Update("is_deleted", true)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除图书失败")
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

// List 分页查询图书列表
func (r *bookRepository) List(ctx context.Context, page, pageSize int) ([]*book.Book, int64, error) {
	return r.FindBySpecification(ctx, book.AllBooks(), page, pageSize)
}

// FindBySpecification 按搜索条件分页查询
func (r *bookRepository) FindBySpecification(ctx context.Context, spec book.Specification, page, pageSize int) ([]*book.Book, int64, error) {
	db := getDB(ctx, r.db)

	query, err := applySpecification(db.Model(&BookModel{}).Scopes(active("books")), spec)
	if err != nil {
		return nil, 0, err
	}
	return r.findPage(db, query, page, pageSize)
}

// FindByCategoryID 分页查询某分类下的图书
func (r *bookRepository) FindByCategoryID(ctx context.Context, categoryID uint, page, pageSize int) ([]*book.Book, int64, error) {
	db := getDB(ctx, r.db)

	query := db.Model(&BookModel{}).
		Scopes(active("books")).
		Joins("JOIN books_categories ON books_categories.book_id = books.id").
		Where("books_categories.category_id = ?", categoryID)
	return r.findPage(db, query, page, pageSize)
}

func (r *bookRepository) findPage(db, query *gorm.DB, page, pageSize int) ([]*book.Book, int64, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书总数失败")
	}

	var models []BookModel
	err := query.Scopes(paginate(page, pageSize)).
		Order("books.id ASC").
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书列表失败")
	}

	books, err := r.withCategories(db, models)
	if err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

// withCategories 批量加载分类ID,避免N+1查询
// 关联到已软删除分类的记录不返回
func (r *bookRepository) withCategories(db *gorm.DB, models []BookModel) ([]*book.Book, error) {
	books := make([]*book.Book, len(models))
	if len(models) == 0 {
		return books, nil
	}

	ids := make([]uint, len(models))
	for i := range models {
		ids[i] = models[i].ID
	}

	var links []BookCategoryModel
	err := db.Model(&BookCategoryModel{}).
		Joins("JOIN categories ON categories.id = books_categories.category_id").
		Scopes(active("categories")).
		Where("books_categories.book_id IN ?", ids).
		Order("books_categories.category_id").
		Find(&links).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询图书分类失败")
	}

	byBook := make(map[uint][]uint, len(models))
	for _, l := range links {
		byBook[l.BookID] = append(byBook[l.BookID], l.CategoryID)
	}

	for i := range models {
		books[i] = toBookEntity(&models[i], byBook[models[i].ID])
	}
	return books, nil
}

// applySpecification 把搜索条件翻译为WHERE子句
// 同一字段多个值为IN(OR语义),不同字段之间为AND
func applySpecification(db *gorm.DB, spec book.Specification) (*gorm.DB, error) {
	for _, cond := range spec.Conditions() {
		col, ok := searchColumns[cond.Field]
		if !ok {
			return nil, book.ErrUnknownSearchField
		}
		db = db.Where(col+" IN ?", cond.Values)
	}
	return db, nil
}

func replaceBookCategories(tx *gorm.DB, bookID uint, categoryIDs []uint) error {
	if err := tx.Where("book_id = ?", bookID).Delete(&BookCategoryModel{}).Error; err != nil {
		return err
	}
	if len(categoryIDs) == 0 {
		return nil
	}

	links := make([]BookCategoryModel, len(categoryIDs))
	for i, id := range categoryIDs {
		links[i] = BookCategoryModel{BookID: bookID, CategoryID: id}
	}
	return tx.Create(&links).Error
}

func toBookModel(b *book.Book) *BookModel {
	return &BookModel{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		ISBN:        b.ISBN,
		Price:       b.Price,
		Description: b.Description,
		CoverImage:  b.CoverImage,
		IsDeleted:   b.IsDeleted,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func toBookEntity(model *BookModel, categoryIDs []uint) *book.Book {
	return &book.Book{
		ID:          model.ID,
		Title:       model.Title,
		Author:      model.Author,
		ISBN:        model.ISBN,
		Price:       model.Price,
		Description: model.Description,
		CoverImage:  model.CoverImage,
		CategoryIDs: categoryIDs,
		IsDeleted:   model.IsDeleted,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}
