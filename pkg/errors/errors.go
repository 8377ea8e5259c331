package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code用于客户端判断错误类型，Code/100即HTTP状态码
// 2. Message是用户友好的提示信息
// 3. Err是内部错误，仅记录到日志，不返回给客户端（防止泄露敏感信息）
type AppError struct {
	Code    int    `json:"code"`    // 业务错误码
	Message string `json:"message"` // 用户友好的错误提示
	Err     error  `json:"-"`       // 内部错误（不序列化）
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus 错误码对应的HTTP状态码
// 约定：40400 → 404，50001 → 500
func (e *AppError) HTTPStatus() int {
	status := e.Code / 100
	if status < 400 || status > 599 || http.StatusText(status) == "" {
		return http.StatusInternalServerError
	}
	return status
}

// Kind 错误大类（错误码的前三位）
func (e *AppError) Kind() int {
	return e.Code / 100
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装系统错误（如数据库错误、网络错误）
// 用途：将底层错误转换为业务错误，隐藏实现细节
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// WithMessage 复制预定义错误并替换提示信息
// 例如：ErrInvalidParams.WithMessage("ISBN必须为13位数字")
func (e *AppError) WithMessage(message string) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: message,
		Err:     e.Err,
	}
}

// WithErr 复制预定义错误并附加内部错误
// 例如：ErrRedisError.WithMessage("保存会话失败").WithErr(err)
func (e *AppError) WithErr(err error) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: e.Message,
		Err:     err,
	}
}

// Is 按错误码比较，使WithMessage派生出的错误仍能匹配预定义错误
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// =========================================
// 错误码定义
// =========================================
// 规范：错误码/100 = HTTP状态码
// - 400xx: 参数校验失败
// - 401xx: 未认证
// - 403xx: 无权限
// - 404xx: 资源不存在
// - 409xx: 资源冲突
// - 5xxxx: 服务端错误（数据库异常、外部服务调用失败）

const (
	// 参数错误（40000-40099）
	ErrCodeInvalidParams    = 40000 // 参数错误(通用)
	ErrCodeBindError        = 40001 // 参数绑定失败
	ErrCodeWeakPassword     = 40002 // 密码强度不足
	ErrCodePasswordMismatch = 40003 // 两次密码不一致
	ErrCodeInvalidStatus    = 40004 // 订单状态非法

	// 认证错误（40100-40199）
	ErrCodeUnauthorized       = 40100 // 未登录
	ErrCodeInvalidToken       = 40101 // Token无效
	ErrCodeTokenExpired       = 40102 // Token过期
	ErrCodeInvalidCredentials = 40103 // 邮箱或密码错误

	// 授权错误（40300-40399）
	ErrCodeForbidden = 40300 // 无权限

	// 资源错误（40400-40499）
	ErrCodeNotFound          = 40400 // 资源不存在(通用)
	ErrCodeUserNotFound      = 40401 // 用户不存在
	ErrCodeBookNotFound      = 40402 // 图书不存在
	ErrCodeOrderNotFound     = 40403 // 订单不存在
	ErrCodeCategoryNotFound  = 40404 // 分类不存在
	ErrCodeCartNotFound      = 40405 // 购物车不存在
	ErrCodeCartItemNotFound  = 40406 // 购物车明细不存在
	ErrCodeOrderItemNotFound = 40407 // 订单明细不存在
	ErrCodeRoleNotFound      = 40408 // 角色不存在

	// 冲突错误（40900-40999）
	ErrCodeConflict       = 40900 // 重复记录(通用)
	ErrCodeEmailDuplicate = 40901 // 邮箱已存在
	ErrCodeISBNDuplicate  = 40902 // ISBN已存在

	// 限流（42900）
	ErrCodeTooManyRequests = 42900

	// 系统级错误码（50000-50099）
	ErrCodeInternal      = 50000 // 内部错误
	ErrCodeDatabaseError = 50001 // 数据库错误
	ErrCodeRedisError    = 50002 // Redis错误
)

// =========================================
// 预定义错误（避免每次都New）
// =========================================

var (
	// 系统错误
	ErrInternal      = New(ErrCodeInternal, "系统内部错误")
	ErrDatabaseError = New(ErrCodeDatabaseError, "数据库错误")
	ErrRedisError    = New(ErrCodeRedisError, "缓存服务错误")

	// 认证授权
	ErrUnauthorized       = New(ErrCodeUnauthorized, "请先登录")
	ErrInvalidToken       = New(ErrCodeInvalidToken, "无效的Token")
	ErrTokenExpired       = New(ErrCodeTokenExpired, "Token已过期")
	ErrInvalidCredentials = New(ErrCodeInvalidCredentials, "邮箱或密码错误")
	ErrForbidden          = New(ErrCodeForbidden, "无权限访问")

	// 资源不存在
	ErrNotFound     = New(ErrCodeNotFound, "资源不存在")
	ErrUserNotFound = New(ErrCodeUserNotFound, "用户不存在")
	ErrRoleNotFound = New(ErrCodeRoleNotFound, "角色不存在")

	// 冲突
	ErrConflict       = New(ErrCodeConflict, "记录已存在")
	ErrEmailDuplicate = New(ErrCodeEmailDuplicate, "邮箱已被注册")

	// 参数错误
	ErrInvalidParams    = New(ErrCodeInvalidParams, "参数错误")
	ErrBindError        = New(ErrCodeBindError, "参数格式错误")
	ErrWeakPassword     = New(ErrCodeWeakPassword, "密码强度不足（需8-20位，包含字母和数字）")
	ErrPasswordMismatch = New(ErrCodePasswordMismatch, "两次输入的密码不一致")

	// 限流
	ErrTooManyRequests = New(ErrCodeTooManyRequests, "请求过于频繁，请稍后再试")
)

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "系统内部错误")
}

// IsNotFound 是否为资源不存在类错误（404xx）
func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind() == 404
}
