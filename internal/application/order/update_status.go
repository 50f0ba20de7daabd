package order

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/educonnect/internal/domain/event"
	"github.com/xiebiao/educonnect/internal/domain/order"
	"github.com/xiebiao/educonnect/internal/domain/user"
	"github.com/xiebiao/educonnect/pkg/tracing"
)

// UpdateStatusUseCase 修改订单状态或支付状态
// 管理员可以修改任意订单；发布者只能修改包含自己图书的订单
type UpdateStatusUseCase struct {
	orderRepo order.Repository
	events    event.Publisher
	log       *zap.Logger
}

func NewUpdateStatusUseCase(orderRepo order.Repository, events event.Publisher, log *zap.Logger) *UpdateStatusUseCase {
	return &UpdateStatusUseCase{orderRepo: orderRepo, events: events, log: log}
}

// UpdateStatusRequest 空字符串表示不修改对应状态
type UpdateStatusRequest struct {
	OrderID       uint
	Actor         Viewer
	Status        string
	PaymentStatus string
}

func (uc *UpdateStatusUseCase) Execute(ctx context.Context, req UpdateStatusRequest) (_ *OrderDTO, err error) {
	ctx, span := tracing.Start(ctx, "UpdateOrderStatus")
	defer func() { tracing.End(span, err) }()

	if req.Status == "" && req.PaymentStatus == "" {
		return nil, order.ErrNothingToUpdate
	}

	o, err := uc.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if !canManage(req.Actor, o) {
		return nil, order.ErrAccessDenied
	}

	oldStatus, oldPayment := o.Status, o.PaymentStatus
	if req.Status != "" && order.Status(req.Status) != o.Status {
		if err := o.TransitionTo(order.Status(req.Status)); err != nil {
			return nil, err
		}
	}
	if req.PaymentStatus != "" && order.PaymentStatus(req.PaymentStatus) != o.PaymentStatus {
		if err := o.ChangePaymentStatus(order.PaymentStatus(req.PaymentStatus)); err != nil {
			return nil, err
		}
	}
	if o.Status == oldStatus && o.PaymentStatus == oldPayment {
		return ToOrderDTO(o), nil
	}

	if err := uc.orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	payload := event.OrderStatusChangedPayload{
		OrderID:          o.ID,
		OrderNo:          o.OrderNo,
		SchoolID:         o.SchoolID,
		Total:            o.Total.StringFixed(2),
		OldStatus:        string(oldStatus),
		NewStatus:        string(o.Status),
		OldPaymentStatus: string(oldPayment),
		NewPaymentStatus: string(o.PaymentStatus),
	}
	if err := uc.events.Publish(ctx, event.OrderStatusChanged, payload); err != nil {
		uc.log.Warn("发布订单状态事件失败", zap.Uint("order_id", o.ID), zap.Error(err))
	}
	return ToOrderDTO(o), nil
}

func canManage(actor Viewer, o *order.Order) bool {
	switch user.Role(actor.Role) {
	case user.RoleAdmin:
		return true
	case user.RolePublisher:
		return o.InvolvesPublisher(actor.UserID)
	}
	return false
}
