package category

import (
	"strings"
	"time"
)

// Category 图书分类(独立聚合)
// 图书通过CategoryIDs引用分类,分类不持有图书
type Category struct {
	ID          uint
	Name        string
	Description string
	IsDeleted   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCategory 创建分类
func NewCategory(name, description string) (*Category, error) {
	now := time.Now()
	c := &Category{
		Name:        strings.TrimSpace(name),
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if c.Name == "" {
		return nil, ErrNameRequired
	}
	return c, nil
}

// Update 整体更新
func (c *Category) Update(name, description string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameRequired
	}
	c.Name = name
	c.Description = description
	c.UpdatedAt = time.Now()
	return nil
}
