package user

import (
	"context"

	"github.com/xiebiao/educonnect/internal/domain/user"
)

// ChangePasswordUseCase 修改自己的密码
type ChangePasswordUseCase struct {
	userService user.Service
}

func NewChangePasswordUseCase(userService user.Service) *ChangePasswordUseCase {
	return &ChangePasswordUseCase{userService: userService}
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	UserID      uint
	OldPassword string
	NewPassword string
}

func (uc *ChangePasswordUseCase) Execute(ctx context.Context, req ChangePasswordRequest) error {
	return uc.userService.ChangePassword(ctx, req.UserID, req.OldPassword, req.NewPassword)
}
