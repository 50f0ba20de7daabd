package messaging

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/educonnect/internal/domain/event"
	"github.com/xiebiao/educonnect/pkg/metrics"
	"github.com/xiebiao/educonnect/pkg/mq"
)

// RoutingKeys 通知服务订阅的事件
var RoutingKeys = []string{"order.*", "user.*"}

// Dispatch 把RabbitMQ消息解码为事件交给处理者
// 无法解析的消息直接确认丢弃，重试也不会成功
func Dispatch(handler event.Handler, log *zap.Logger) mq.Handler {
	return func(ctx context.Context, d mq.Delivery) error {
		var msg event.Message
		if err := json.Unmarshal(d.Body, &msg); err != nil {
			log.Error("事件格式错误，丢弃",
				zap.String("routing_key", d.RoutingKey),
				zap.String("message_id", d.MessageID),
				zap.Error(err),
			)
			return nil
		}
		if msg.Type == "" {
			msg.Type = d.RoutingKey
		}

		start := time.Now()
		err := handler.Handle(ctx, msg)
		metrics.ObserveConsume(msg.Type, time.Since(start), err)
		return err
	}
}
