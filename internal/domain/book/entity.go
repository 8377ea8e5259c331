package book

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// isbnPattern ISBN-13：13位数字
var isbnPattern = regexp.MustCompile(`^\d{13}$`)

// MaxPrice 价格上限,与books.price列DECIMAL(10,2)一致
var MaxPrice = decimal.RequireFromString("99999999.99")

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. 价格使用decimal.Decimal(精确小数,避免浮点误差)
// 2. ISBN作为业务唯一标识(数据库层保证唯一性)
// 3. 分类只保存ID(Category是独立聚合,不跨聚合引用对象)
// 4. IsDeleted为软删除标记,删除后所有查询都不可见
type Book struct {
	ID          uint
	Title       string
	Author      string
	ISBN        string
	Price       decimal.Decimal
	Description string
	CoverImage  string
	CategoryIDs []uint
	IsDeleted   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewBook 创建新图书(工厂方法)
// 创建前完成全部业务规则校验,保证实体始终有效
func NewBook(title, author, isbn string, price decimal.Decimal, description, coverImage string, categoryIDs []uint) (*Book, error) {
	now := time.Now()
	b := &Book{
		Title:       strings.TrimSpace(title),
		Author:      strings.TrimSpace(author),
		ISBN:        strings.TrimSpace(isbn),
		Price:       price,
		Description: description,
		CoverImage:  coverImage,
		CategoryIDs: uniqueIDs(categoryIDs),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate 业务规则校验
// - 书名、作者必填
// - ISBN必须为13位数字
// - 价格不能为负数,最多两位小数且不超过MaxPrice
func (b *Book) Validate() error {
	if b.Title == "" {
		return ErrTitleRequired
	}
	if b.Author == "" {
		return ErrAuthorRequired
	}
	if !IsValidISBN(b.ISBN) {
		return ErrInvalidISBN
	}
	if b.Price.IsNegative() {
		return ErrInvalidPrice
	}
	if !b.Price.Equal(b.Price.Round(2)) {
		return ErrInvalidPrice.WithMessage("价格最多两位小数")
	}
	if b.Price.GreaterThan(MaxPrice) {
		return ErrInvalidPrice.WithMessage("价格超出上限")
	}
	return nil
}

// Update 整体更新图书信息(PUT语义)
func (b *Book) Update(title, author, isbn string, price decimal.Decimal, description, coverImage string, categoryIDs []uint) error {
	updated := *b
	updated.Title = strings.TrimSpace(title)
	updated.Author = strings.TrimSpace(author)
	updated.ISBN = strings.TrimSpace(isbn)
	updated.Price = price
	updated.Description = description
	updated.CoverImage = coverImage
	updated.CategoryIDs = uniqueIDs(categoryIDs)
	if err := updated.Validate(); err != nil {
		return err
	}

	updated.UpdatedAt = time.Now()
	*b = updated
	return nil
}

// IsValidISBN 校验ISBN-13格式
func IsValidISBN(isbn string) bool {
	return isbnPattern.MatchString(isbn)
}

func uniqueIDs(ids []uint) []uint {
	if len(ids) == 0 {
		return nil
	}
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
