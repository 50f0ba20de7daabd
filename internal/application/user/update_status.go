package user

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/educonnect/internal/domain/event"
	"github.com/xiebiao/educonnect/internal/domain/user"
	"github.com/xiebiao/educonnect/pkg/tracing"
)

// UpdateStatusUseCase 管理员审核账号
// 状态可以任意切换；审核结果变化后通知该用户
type UpdateStatusUseCase struct {
	userService user.Service
	events      event.Publisher
	log         *zap.Logger
}

func NewUpdateStatusUseCase(userService user.Service, events event.Publisher, log *zap.Logger) *UpdateStatusUseCase {
	return &UpdateStatusUseCase{userService: userService, events: events, log: log}
}

// UpdateStatusRequest 审核请求
type UpdateStatusRequest struct {
	UserID uint
	Status string
}

func (uc *UpdateStatusUseCase) Execute(ctx context.Context, req UpdateStatusRequest) (_ *UserDTO, err error) {
	ctx, span := tracing.Start(ctx, "UpdateUserStatus")
	defer func() { tracing.End(span, err) }()

	before, err := uc.userService.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	oldStatus := before.Status

	u, err := uc.userService.UpdateStatus(ctx, req.UserID, user.Status(req.Status))
	if err != nil {
		return nil, err
	}

	if u.Status != oldStatus && u.Status != user.StatusPending {
		payload := event.UserStatusChangedPayload{
			UserID:    u.ID,
			OldStatus: string(oldStatus),
			NewStatus: string(u.Status),
		}
		if err := uc.events.Publish(ctx, event.UserStatusChanged, payload); err != nil {
			uc.log.Warn("发布审核事件失败", zap.Uint("user_id", u.ID), zap.Error(err))
		}
	}
	return ToUserDTO(u), nil
}
