package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_HTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want int
	}{
		{"参数错误", ErrInvalidParams, http.StatusBadRequest},
		{"未登录", ErrUnauthorized, http.StatusUnauthorized},
		{"无权限", ErrForbidden, http.StatusForbidden},
		{"资源不存在", ErrUserNotFound, http.StatusNotFound},
		{"邮箱重复", ErrEmailDuplicate, http.StatusConflict},
		{"限流", ErrTooManyRequests, http.StatusTooManyRequests},
		{"内部错误", ErrDatabaseError, http.StatusInternalServerError},
		{"非法错误码", New(123, "x"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.HTTPStatus())
		})
	}
}

func TestAppError_WithMessage(t *testing.T) {
	err := ErrInvalidParams.WithMessage("ISBN必须为13位数字")

	assert.Equal(t, ErrCodeInvalidParams, err.Code)
	assert.Equal(t, "ISBN必须为13位数字", err.Message)
	assert.True(t, errors.Is(err, ErrInvalidParams), "派生错误应匹配预定义错误")
	assert.Equal(t, "参数错误", ErrInvalidParams.Message, "原错误不应被修改")
}

func TestAppError_WithErr(t *testing.T) {
	cause := errors.New("connection refused")
	err := ErrRedisError.WithMessage("保存会话失败").WithErr(cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrRedisError)
	assert.Nil(t, ErrRedisError.Err, "原错误不应被修改")
}

func TestGetAppError(t *testing.T) {
	t.Run("包装链中的AppError", func(t *testing.T) {
		wrapped := fmt.Errorf("外层: %w", ErrUserNotFound)
		appErr := GetAppError(wrapped)
		assert.Equal(t, ErrCodeUserNotFound, appErr.Code)
	})

	t.Run("普通错误转为内部错误", func(t *testing.T) {
		appErr := GetAppError(errors.New("connection refused"))
		assert.Equal(t, ErrCodeInternal, appErr.Code)
		assert.EqualError(t, appErr.Err, "connection refused")
	})
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(ErrUserNotFound))
	assert.True(t, IsNotFound(New(ErrCodeCartItemNotFound, "购物车明细不存在")))
	assert.False(t, IsNotFound(ErrConflict))
	assert.False(t, IsNotFound(errors.New("plain")))
}
