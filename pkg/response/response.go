package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/xiebiao/educonnect/pkg/errors"
	"go.uber.org/zap"
)

// Response 统一响应结构
// Success 表示业务是否成功，HTTP 状态码同时反映错误类别。
// Data 失败时为 null，参数校验失败时为 {字段: 提示}。
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

var logger = zap.NewNop()

// SetLogger 设置错误日志输出（启动时调用一次）
func SetLogger(l *zap.Logger) {
	if l != nil {
		logger = l
	}
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	SuccessWithMessage(c, "success", data)
}

// SuccessWithMessage 带提示信息的成功响应
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Created 资源创建成功（201）
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error 错误响应，HTTP状态码由错误码推导
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	writeError(c, apperrors.HTTPStatus(appErr.Code), appErr)
}

// BadRequest 无论错误类别一律返回400，用于"任何失败都是400"的接口
func BadRequest(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	status := http.StatusBadRequest
	if apperrors.HTTPStatus(appErr.Code) >= http.StatusInternalServerError {
		status = http.StatusInternalServerError
	}
	writeError(c, status, appErr)
}

// ValidationError 字段级校验失败
func ValidationError(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Message: apperrors.ErrValidation.Message,
		Data:    fields,
	})
}

// Abort 中间件中使用，终止后续处理
func Abort(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	c.AbortWithStatusJSON(apperrors.HTTPStatus(appErr.Code), Response{
		Success: false,
		Message: appErr.Message,
		Data:    nil,
	})
}

func writeError(c *gin.Context, status int, appErr *apperrors.AppError) {
	// 内部错误只记录日志，不返回给客户端
	if appErr.Err != nil {
		fields := []zap.Field{
			zap.Int("code", appErr.Code),
			zap.String("path", c.FullPath()),
			zap.Error(appErr.Err),
		}
		if rid := c.GetString("request_id"); rid != "" {
			fields = append(fields, zap.String("request_id", rid))
		}
		if status >= http.StatusInternalServerError {
			logger.Error(appErr.Message, fields...)
		} else {
			logger.Warn(appErr.Message, fields...)
		}
	}

	c.JSON(status, Response{
		Success: false,
		Message: appErr.Message,
		Data:    nil,
	})
}

// =========================================
// 分页响应结构
// =========================================

// PageData 分页数据封装
type PageData struct {
	List       interface{} `json:"list"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
}

// NewPageData 创建分页数据
func NewPageData(list interface{}, total int64, page, pageSize int) *PageData {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int(total) / pageSize
		if int(total)%pageSize != 0 {
			totalPages++
		}
	}

	return &PageData{
		List:       list,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// SuccessWithPage 分页成功响应
func SuccessWithPage(c *gin.Context, list interface{}, total int64, page, pageSize int) {
	Success(c, NewPageData(list, total, page, pageSize))
}
