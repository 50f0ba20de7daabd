package user

import (
	apperrors "github.com/xiebiao/educonnect/pkg/errors"
)

// 用户领域错误定义
var (
	ErrUserNotFound = apperrors.New(apperrors.ErrCodeUserNotFound, "用户不存在")

	ErrEmailDuplicate = apperrors.New(apperrors.ErrCodeEmailDuplicate, "邮箱已被注册")

	ErrInvalidRole = apperrors.New(apperrors.ErrCodeInvalidParams, "无效的用户角色")

	ErrInvalidStatus = apperrors.New(apperrors.ErrCodeInvalidParams, "无效的账号状态")

	ErrWeakPassword = apperrors.New(apperrors.ErrCodeWeakPassword, "密码长度不能少于6位")

	// ErrWrongOldPassword 修改密码时原密码不正确
	ErrWrongOldPassword = apperrors.New(apperrors.ErrCodeBusinessError, "原密码不正确")
)
