package book

import (
	apperrors "github.com/xiebiao/educonnect/pkg/errors"
)

// 图书领域错误定义
var (
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	ErrISBNDuplicate = apperrors.New(apperrors.ErrCodeISBNDuplicate, "ISBN号已存在")

	ErrISBNRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "ISBN不能为空")

	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "价格必须大于0")

	// ErrUnauthorized 既不是发布者本人也不是管理员
	ErrUnauthorized = apperrors.New(apperrors.ErrCodeNotOwner, "无权操作此图书")

	ErrEmptyKeyword = apperrors.New(apperrors.ErrCodeInvalidParams, "搜索关键词不能为空")
)
