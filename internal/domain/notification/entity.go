package notification

import (
	"time"
)

// Type 通知类型
type Type string

const (
	TypeOrder        Type = "order"         // 发布者收到新订单
	TypeStatusChange Type = "status_change" // 学校订单状态变化
	TypeApproval     Type = "approval"      // 账号审核结果
	TypePayment      Type = "payment"       // 支付完成
)

// Notification 站内通知
type Notification struct {
	ID        uint
	UserID    uint
	Type      Type
	Title     string
	Message   string
	Link      string
	IsRead    bool
	CreatedAt time.Time
}

// New 创建未读通知
func New(userID uint, typ Type, title, message, link string) *Notification {
	return &Notification{
		UserID:    userID,
		Type:      typ,
		Title:     title,
		Message:   message,
		Link:      link,
		CreatedAt: time.Now(),
	}
}
