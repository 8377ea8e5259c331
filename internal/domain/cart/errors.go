package cart

import (
	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
)

var (
	// ErrCartNotFound 购物车不存在
	ErrCartNotFound = apperrors.New(apperrors.ErrCodeCartNotFound, "购物车不存在")

	// ErrCartItemNotFound 购物车明细不存在(或不属于当前用户)
	ErrCartItemNotFound = apperrors.New(apperrors.ErrCodeCartItemNotFound, "购物车明细不存在")

	// ErrInvalidQuantity 数量不合法
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "数量必须大于0")

	// ErrCartDuplicate 并发创建购物车时唯一索引冲突
	ErrCartDuplicate = apperrors.New(apperrors.ErrCodeConflict, "购物车已存在")
)
