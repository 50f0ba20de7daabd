package event

import (
	"context"
	"encoding/json"
	"time"
)

// 路由键，同时作为事件类型
const (
	OrderCreated       = "order.created"
	OrderStatusChanged = "order.status_changed"
	UserStatusChanged  = "user.status_changed"
)

// Event 领域事件信封
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

// Message 投递给处理者的事件，Payload保持原始JSON由处理者按类型解码
type Message struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

// Decode 按事件类型解码Payload
func (m Message) Decode(v any) error {
	return json.Unmarshal(m.Payload, v)
}

// OrderCreatedPayload 新订单
type OrderCreatedPayload struct {
	OrderID      uint   `json:"order_id"`
	OrderNo      string `json:"order_no"`
	SchoolID     uint   `json:"school_id"`
	SchoolName   string `json:"school_name"`
	Total        string `json:"total"`
	PublisherIDs []uint `json:"publisher_ids"`
}

// OrderStatusChangedPayload 订单状态或支付状态变化
type OrderStatusChangedPayload struct {
	OrderID          uint   `json:"order_id"`
	OrderNo          string `json:"order_no"`
	SchoolID         uint   `json:"school_id"`
	Total            string `json:"total"`
	OldStatus        string `json:"old_status"`
	NewStatus        string `json:"new_status"`
	OldPaymentStatus string `json:"old_payment_status"`
	NewPaymentStatus string `json:"new_payment_status"`
}

// UserStatusChangedPayload 账号审核状态变化
type UserStatusChangedPayload struct {
	UserID    uint   `json:"user_id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

// Publisher 领域事件发布者
// 发布失败不影响主流程，由调用方记录日志
type Publisher interface {
	Publish(ctx context.Context, eventType string, payload any) error
}

// Handler 领域事件处理者
type Handler interface {
	Handle(ctx context.Context, msg Message) error
}
