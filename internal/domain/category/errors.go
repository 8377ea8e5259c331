package category

import (
	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
)

var (
	// ErrCategoryNotFound 分类不存在
	ErrCategoryNotFound = apperrors.New(apperrors.ErrCodeCategoryNotFound, "分类不存在")

	// ErrNameRequired 分类名必填
	ErrNameRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "分类名称不能为空")
)
