package notification

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/xiebiao/educonnect/internal/domain/event"
	"github.com/xiebiao/educonnect/internal/domain/notification"
	"github.com/xiebiao/educonnect/internal/domain/order"
	"github.com/xiebiao/educonnect/internal/domain/user"
)

// 通知跳转链接
const (
	linkPublisherOrders = "/publisher/orders"
	linkSchoolOrders    = "/school/orders"
	linkDashboard       = "/dashboard"
)

var statusMessages = map[string]string{
	string(order.StatusPaid):      "您的订单已确认",
	string(order.StatusFulfilled): "您的订单已送达",
	string(order.StatusCancelled): "您的订单已取消",
}

// EventHandler 把领域事件转换为站内通知
// 既可挂在MQ消费者上，也可被进程内发布者直接调用
type EventHandler struct {
	repo notification.Repository
	log  *zap.Logger
}

func NewEventHandler(repo notification.Repository, log *zap.Logger) *EventHandler {
	return &EventHandler{repo: repo, log: log}
}

// Handle 未知事件类型直接忽略
func (h *EventHandler) Handle(ctx context.Context, msg event.Message) error {
	switch msg.Type {
	case event.OrderCreated:
		var p event.OrderCreatedPayload
		if err := msg.Decode(&p); err != nil {
			return err
		}
		return h.onOrderCreated(ctx, p)
	case event.OrderStatusChanged:
		var p event.OrderStatusChangedPayload
		if err := msg.Decode(&p); err != nil {
			return err
		}
		return h.onOrderStatusChanged(ctx, p)
	case event.UserStatusChanged:
		var p event.UserStatusChangedPayload
		if err := msg.Decode(&p); err != nil {
			return err
		}
		return h.onUserStatusChanged(ctx, p)
	default:
		h.log.Debug("忽略未知事件", zap.String("type", msg.Type), zap.String("id", msg.ID))
		return nil
	}
}

// 每个涉及的发布者一条，一次写入
// 写入失败时消息重新入队，不会出现部分发布者已收到的情况
func (h *EventHandler) onOrderCreated(ctx context.Context, p event.OrderCreatedPayload) error {
	seen := make(map[uint]struct{}, len(p.PublisherIDs))
	list := make([]*notification.Notification, 0, len(p.PublisherIDs))
	for _, publisherID := range p.PublisherIDs {
		if _, ok := seen[publisherID]; ok {
			continue
		}
		seen[publisherID] = struct{}{}
		list = append(list, notification.New(publisherID, notification.TypeOrder,
			"收到新订单",
			fmt.Sprintf("%s 提交了新订单，金额 ¥%s", p.SchoolName, p.Total),
			linkPublisherOrders))
	}
	return h.repo.CreateBatch(ctx, list)
}

// 状态和支付同时变化时两条通知一起写入
func (h *EventHandler) onOrderStatusChanged(ctx context.Context, p event.OrderStatusChangedPayload) error {
	var list []*notification.Notification
	if p.NewStatus != p.OldStatus {
		msg, ok := statusMessages[p.NewStatus]
		if !ok {
			msg = fmt.Sprintf("您的订单状态已更新为 %s", p.NewStatus)
		}
		list = append(list, notification.New(p.SchoolID, notification.TypeStatusChange,
			fmt.Sprintf("订单 %s 状态更新", p.OrderNo), msg, linkSchoolOrders))
	}

	if p.NewPaymentStatus != p.OldPaymentStatus && p.NewPaymentStatus == string(order.PaymentCompleted) {
		list = append(list, notification.New(p.SchoolID, notification.TypePayment,
			"支付成功",
			fmt.Sprintf("订单 %s 的付款 ¥%s 已处理成功", p.OrderNo, p.Total),
			linkSchoolOrders))
	}
	if len(list) == 0 {
		return nil
	}
	return h.repo.CreateBatch(ctx, list)
}

// 只通知审核通过和拒绝
func (h *EventHandler) onUserStatusChanged(ctx context.Context, p event.UserStatusChangedPayload) error {
	var n *notification.Notification
	switch user.Status(p.NewStatus) {
	case user.StatusApproved:
		n = notification.New(p.UserID, notification.TypeApproval,
			"账号审核通过", "您的账号已通过审核，现在可以使用全部功能。", linkDashboard)
	case user.StatusRejected:
		n = notification.New(p.UserID, notification.TypeApproval,
			"账号审核未通过", "您的账号未通过审核，如有疑问请联系管理员。", "")
	default:
		return nil
	}
	return h.repo.Create(ctx, n)
}
