package notification

import (
	"context"
	"time"

	"github.com/xiebiao/educonnect/internal/domain/notification"
)

// DefaultListLimit 列表默认条数
const DefaultListLimit = 50

// NotificationDTO 对外的通知
type NotificationDTO struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"userId"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Link      string    `json:"link,omitempty"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

func toNotificationDTO(n *notification.Notification) *NotificationDTO {
	return &NotificationDTO{
		ID:        n.ID,
		UserID:    n.UserID,
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		Link:      n.Link,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

// InboxUseCase 当前用户的站内信
// 查询和修改都限定在调用者自己的通知范围内，由仓储按userID过滤。
type InboxUseCase struct {
	repo notification.Repository
}

func NewInboxUseCase(repo notification.Repository) *InboxUseCase {
	return &InboxUseCase{repo: repo}
}

// List 最新的在前，limit<=0时取默认值
func (uc *InboxUseCase) List(ctx context.Context, userID uint, limit int) ([]*NotificationDTO, error) {
	if limit <= 0 || limit > DefaultListLimit {
		limit = DefaultListLimit
	}
	list, err := uc.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	dtos := make([]*NotificationDTO, 0, len(list))
	for _, n := range list {
		dtos = append(dtos, toNotificationDTO(n))
	}
	return dtos, nil
}

func (uc *InboxUseCase) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return uc.repo.CountUnread(ctx, userID)
}

func (uc *InboxUseCase) MarkRead(ctx context.Context, id, userID uint) error {
	return uc.repo.MarkRead(ctx, id, userID)
}

// MarkAllRead 返回本次标记的条数
func (uc *InboxUseCase) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	return uc.repo.MarkAllRead(ctx, userID)
}

func (uc *InboxUseCase) Delete(ctx context.Context, id, userID uint) error {
	return uc.repo.Delete(ctx, id, userID)
}
