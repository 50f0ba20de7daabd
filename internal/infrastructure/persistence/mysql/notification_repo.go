package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/educonnect/internal/domain/notification"
	apperrors "github.com/xiebiao/educonnect/pkg/errors"
)

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository 创建通知仓储
func NewNotificationRepository(db *gorm.DB) notification.Repository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	return r.CreateBatch(ctx, []*notification.Notification{n})
}

func (r *notificationRepository) CreateBatch(ctx context.Context, list []*notification.Notification) error {
	if len(list) == 0 {
		return nil
	}
	models := make([]NotificationModel, len(list))
	for i, n := range list {
		models[i] = NotificationModel{
			UserID:    n.UserID,
			Type:      string(n.Type),
			Title:     n.Title,
			Message:   n.Message,
			Link:      n.Link,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		}
	}
	if err := conn(ctx, r.db).Create(&models).Error; err != nil {
		return apperrors.ErrDatabaseError.WithErr(err)
	}
	for i, n := range list {
		n.ID = models[i].ID
		n.CreatedAt = models[i].CreatedAt
	}
	return nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID uint, limit int) ([]*notification.Notification, error) {
	var models []NotificationModel
	err := conn(ctx, r.db).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, apperrors.ErrDatabaseError.WithErr(err)
	}

	list := make([]*notification.Notification, len(models))
	for i := range models {
		list[i] = toNotificationEntity(&models[i])
	}
	return list, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.ErrDatabaseError.WithErr(err)
	}
	return count, nil
}

// MarkRead 已读的通知再次标记视为成功
func (r *notificationRepository) MarkRead(ctx context.Context, id, userID uint) error {
	db := conn(ctx, r.db)

	var count int64
	if err := db.Model(&NotificationModel{}).Where("id = ? AND user_id = ?", id, userID).Count(&count).Error; err != nil {
		return apperrors.ErrDatabaseError.WithErr(err)
	}
	if count == 0 {
		return notification.ErrNotificationNotFound
	}

	err := db.Model(&NotificationModel{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true).Error
	if err != nil {
		return apperrors.ErrDatabaseError.WithErr(err)
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	result := conn(ctx, r.db).Model(&NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	if result.Error != nil {
		return 0, apperrors.ErrDatabaseError.WithErr(result.Error)
	}
	return result.RowsAffected, nil
}

func (r *notificationRepository) Delete(ctx context.Context, id, userID uint) error {
	result := conn(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).Delete(&NotificationModel{})
	if result.Error != nil {
		return apperrors.ErrDatabaseError.WithErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return notification.ErrNotificationNotFound
	}
	return nil
}

func toNotificationEntity(m *NotificationModel) *notification.Notification {
	return &notification.Notification{
		ID:        m.ID,
		UserID:    m.UserID,
		Type:      notification.Type(m.Type),
		Title:     m.Title,
		Message:   m.Message,
		Link:      m.Link,
		IsRead:    m.IsRead,
		CreatedAt: m.CreatedAt,
	}
}
