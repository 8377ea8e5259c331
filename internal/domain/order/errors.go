package order

import (
	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
)

// 订单领域错误定义
var (
	// ErrOrderNotFound 订单不存在
	ErrOrderNotFound = apperrors.New(apperrors.ErrCodeOrderNotFound, "订单不存在")

	// ErrOrderItemNotFound 订单明细不存在
	ErrOrderItemNotFound = apperrors.New(apperrors.ErrCodeOrderItemNotFound, "订单明细不存在")

	// ErrInvalidStatus 非法的订单状态
	ErrInvalidStatus = apperrors.New(apperrors.ErrCodeInvalidStatus, "订单状态必须为PENDING、COMPLETED或DELIVERED")

	// ErrShippingAddressRequired 收货地址为空
	ErrShippingAddressRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "收货地址不能为空")

	// ErrInvalidQuantity 购买数量不合法
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "购买数量必须大于0")

	// ErrInvalidPrice 单价不合法
	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "单价不能为负数")
)
