package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError 自定义应用错误
// Code 是业务错误码，HTTP 状态码由 HTTPStatus 按错误码区间推导；
// Err 是内部错误，只进日志，不返回给客户端。
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
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

// Is 按错误码比较，预定义错误被 WithErr 包装后仍能 errors.Is 命中
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// WithErr 复制一份错误并附加内部原因，不修改预定义的全局错误
func (e *AppError) WithErr(err error) *AppError {
	return &AppError{Code: e.Code, Message: e.Message, Err: err}
}

// WithMessage 复制一份错误并替换提示信息
func (e *AppError) WithMessage(message string) *AppError {
	return &AppError{Code: e.Code, Message: message, Err: e.Err}
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装系统错误（如数据库错误、网络错误）
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

// =========================================
// 错误码定义
// =========================================
// - 400xx: 业务规则 / 重复资源
// - 401xx: 认证
// - 403xx: 授权
// - 404xx: 资源不存在
// - 409xx: 并发冲突
// - 429xx: 限流
// - 5xxxx: 服务端错误

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal      = 50000
	ErrCodeDatabaseError = 50001
	ErrCodeRedisError    = 50002
	ErrCodeStorageError  = 50003 // 对象存储错误
	ErrCodeMQError       = 50004 // 消息队列错误

	// 业务规则错误（40000-40049）
	ErrCodeBusinessError           = 40000
	ErrCodeInvalidStatusTransition = 40002 // 状态流转非法
	ErrCodeEmailDuplicate          = 40003
	ErrCodeISBNDuplicate           = 40004
	ErrCodeWeakPassword            = 40005
	ErrCodeDuplicateEntry          = 40009

	// 参数错误（40050-40099）
	ErrCodeInvalidParams = 40050
	ErrCodeBindError     = 40051
	ErrCodeValidation    = 40052 // 字段校验失败

	// 认证错误（40100-40199）
	ErrCodeUnauthorized       = 40100 // 未登录
	ErrCodeInvalidToken       = 40101
	ErrCodeTokenExpired       = 40102
	ErrCodeInvalidCredentials = 40103 // 邮箱或密码错误
	ErrCodeAccountNotApproved = 40104 // 账号未审核通过

	// 授权错误（40300-40399）
	ErrCodeForbidden    = 40300 // 角色不满足
	ErrCodeNotOwner     = 40301 // 非资源所有者
	ErrCodeAccessDenied = 40302 // 不可见的资源

	// 资源错误（40400-40499）
	ErrCodeNotFound             = 40400
	ErrCodeUserNotFound         = 40401
	ErrCodeBookNotFound         = 40402
	ErrCodeOrderNotFound        = 40403
	ErrCodeNotificationNotFound = 40404

	// 并发冲突（40900-40999）
	ErrCodeConcurrentModification = 40900

	// 请求体过大（41300-41399）
	ErrCodeRequestTooLarge = 41300

	// 限流（42900-42999）
	ErrCodeTooManyRequests = 42900
)

// =========================================
// 预定义错误
// =========================================

var (
	ErrInternal      = New(ErrCodeInternal, "系统内部错误")
	ErrDatabaseError = New(ErrCodeDatabaseError, "数据库错误")
	ErrRedisError    = New(ErrCodeRedisError, "缓存服务错误")
	ErrStorageError  = New(ErrCodeStorageError, "文件存储服务错误")
	ErrMQError       = New(ErrCodeMQError, "消息服务错误")

	ErrUnauthorized       = New(ErrCodeUnauthorized, "请先登录")
	ErrInvalidToken       = New(ErrCodeInvalidToken, "无效的Token")
	ErrTokenExpired       = New(ErrCodeTokenExpired, "Token已过期")
	ErrInvalidCredentials = New(ErrCodeInvalidCredentials, "邮箱或密码错误")
	ErrAccountNotApproved = New(ErrCodeAccountNotApproved, "账号尚未通过审核")

	ErrForbidden = New(ErrCodeForbidden, "无权限访问")
	ErrNotOwner  = New(ErrCodeNotOwner, "只能操作自己的资源")

	ErrNotFound = New(ErrCodeNotFound, "资源不存在")

	ErrInvalidStatusTransition = New(ErrCodeInvalidStatusTransition, "状态不允许此操作")
	ErrDuplicateEntry          = New(ErrCodeDuplicateEntry, "记录已存在")
	ErrConcurrentModification  = New(ErrCodeConcurrentModification, "数据已被其他请求修改，请刷新后重试")
	ErrTooManyRequests         = New(ErrCodeTooManyRequests, "请求过于频繁，请稍后再试")
	ErrRequestTooLarge         = New(ErrCodeRequestTooLarge, "请求体过大")

	ErrInvalidParams = New(ErrCodeInvalidParams, "参数错误")
	ErrBindError     = New(ErrCodeBindError, "参数格式错误")
	ErrValidation    = New(ErrCodeValidation, "参数校验失败")
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

// HTTPStatus 根据业务错误码推导HTTP状态码
func HTTPStatus(code int) int {
	switch {
	case code >= 40000 && code < 40100:
		return http.StatusBadRequest
	case code >= 40100 && code < 40200:
		return http.StatusUnauthorized
	case code >= 40300 && code < 40400:
		return http.StatusForbidden
	case code >= 40400 && code < 40500:
		return http.StatusNotFound
	case code >= 40900 && code < 41000:
		return http.StatusConflict
	case code >= 41300 && code < 41400:
		return http.StatusRequestEntityTooLarge
	case code >= 42900 && code < 43000:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
