package order

import (
	apperrors "github.com/xiebiao/educonnect/pkg/errors"
)

// 订单领域错误定义
var (
	ErrOrderNotFound = apperrors.New(apperrors.ErrCodeOrderNotFound, "订单不存在")

	ErrInvalidStatusTransition = apperrors.New(apperrors.ErrCodeInvalidStatusTransition, "订单状态不允许此操作")

	ErrInvalidStatus = apperrors.New(apperrors.ErrCodeInvalidParams, "无效的订单状态")

	ErrInvalidOrderItems = apperrors.New(apperrors.ErrCodeInvalidParams, "订单明细不能为空")

	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "购买数量必须在1-999之间")

	ErrBookUnavailable = apperrors.New(apperrors.ErrCodeBookNotFound, "订单中包含不存在的图书")

	// ErrAccessDenied 订单对当前用户不可见
	ErrAccessDenied = apperrors.New(apperrors.ErrCodeAccessDenied, "无权访问此订单")

	ErrNothingToUpdate = apperrors.New(apperrors.ErrCodeInvalidParams, "请指定订单状态或支付状态")
)
