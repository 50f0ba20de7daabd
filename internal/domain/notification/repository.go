package notification

import (
	"context"

	apperrors "github.com/xiebiao/educonnect/pkg/errors"
)

var ErrNotificationNotFound = apperrors.New(apperrors.ErrCodeNotificationNotFound, "通知不存在")

// Repository 通知仓储，所有查询和修改都限定在userID范围内
type Repository interface {
	Create(ctx context.Context, n *Notification) error

	// CreateBatch 一条INSERT写入多条通知，要么全部成功要么全部失败
	CreateBatch(ctx context.Context, list []*Notification) error

	// ListByUser 按创建时间倒序，最多limit条
	ListByUser(ctx context.Context, userID uint, limit int) ([]*Notification, error)

	CountUnread(ctx context.Context, userID uint) (int64, error)

	// MarkRead 不存在或不属于该用户返回ErrNotificationNotFound
	MarkRead(ctx context.Context, id, userID uint) error

	// MarkAllRead 返回本次标记的条数
	MarkAllRead(ctx context.Context, userID uint) (int64, error)

	// Delete 不存在或不属于该用户返回ErrNotificationNotFound
	Delete(ctx context.Context, id, userID uint) error
}
