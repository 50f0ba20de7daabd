// Package handler HTTP处理器
//
// Handler只负责HTTP相关的事情：绑定参数、调用用例、写响应。
// 业务规则在domain层，编排在application层。
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/educonnect/internal/application/upload"
	"github.com/xiebiao/educonnect/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/educonnect/pkg/errors"
	"github.com/xiebiao/educonnect/pkg/response"
	"github.com/xiebiao/educonnect/pkg/validator"
)

const uploadField = "file"

// bindJSON 绑定失败时已写好响应，调用方直接return
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		writeBindError(c, err)
		return false
	}
	return true
}

func bindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		writeBindError(c, err)
		return false
	}
	return true
}

func writeBindError(c *gin.Context, err error) {
	if fields, ok := validator.Translate(err); ok {
		response.ValidationError(c, fields)
		return
	}
	response.Error(c, apperrors.ErrBindError.WithErr(err))
}

// pathID 解析路径上的数字ID
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.Error(c, apperrors.ErrInvalidParams.WithMessage("无效的ID"))
		return 0, false
	}
	return uint(id), true
}

// formImage 读取multipart中的图片，返回的close必须调用
func formImage(c *gin.Context) (upload.File, func(), bool) {
	fh, err := c.FormFile(uploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.Is(err, http.ErrMissingFile):
			response.BadRequest(c, upload.ErrEmptyFile)
		case errors.As(err, &tooLarge):
			response.Error(c, apperrors.ErrRequestTooLarge)
		default:
			response.BadRequest(c, apperrors.ErrBindError.WithErr(err))
		}
		return upload.File{}, nil, false
	}
	f, err := fh.Open()
	if err != nil {
		response.BadRequest(c, apperrors.ErrBindError.WithErr(err))
		return upload.File{}, nil, false
	}
	file := upload.File{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Reader:      f,
	}
	return file, func() { _ = f.Close() }, true
}

func currentUserID(c *gin.Context) uint {
	return middleware.GetUserID(c)
}
