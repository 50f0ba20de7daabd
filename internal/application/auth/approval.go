package auth

import (
	"context"
	"errors"

	"github.com/xiebiao/educonnect/internal/domain/user"
)

// ApprovalChecker 按用户ID读取审核状态，供路由的角色守卫使用
type ApprovalChecker struct {
	userService user.Service
}

func NewApprovalChecker(userService user.Service) *ApprovalChecker {
	return &ApprovalChecker{userService: userService}
}

// IsApproved 用户不存在按未审核处理
func (c *ApprovalChecker) IsApproved(ctx context.Context, userID uint) (bool, error) {
	u, err := c.userService.GetByID(ctx, userID)
	if errors.Is(err, user.ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return u.IsApproved(), nil
}
