// Package messaging 领域事件的发布与分发
//
// mq.enabled=true时事件经RabbitMQ投递，由cmd/notifier消费；
// 否则在进程内直接交给处理者。
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xiebiao/educonnect/internal/domain/event"
	apperrors "github.com/xiebiao/educonnect/pkg/errors"
	"github.com/xiebiao/educonnect/pkg/metrics"
)

// Encode 生成事件信封并序列化
func Encode(eventType string, payload any) (event.Event, []byte, error) {
	e := event.Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
	body, err := json.Marshal(e)
	if err != nil {
		return e, nil, fmt.Errorf("序列化事件失败: %w", err)
	}
	return e, body, nil
}

// amqpPublisher mq.Publisher的发布能力
type amqpPublisher interface {
	Publish(ctx context.Context, routingKey, messageID string, body []byte) error
}

// RabbitPublisher 通过RabbitMQ发布事件，routing key即事件类型
type RabbitPublisher struct {
	pub amqpPublisher
	log *zap.Logger
}

// NewRabbitPublisher 创建RabbitMQ事件发布者
func NewRabbitPublisher(pub amqpPublisher, log *zap.Logger) *RabbitPublisher {
	return &RabbitPublisher{pub: pub, log: log.Named("events")}
}

func (p *RabbitPublisher) Publish(ctx context.Context, eventType string, payload any) (err error) {
	defer func() { metrics.ObservePublish(eventType, err) }()

	e, body, err := Encode(eventType, payload)
	if err != nil {
		return apperrors.ErrMQError.WithErr(err)
	}
	if err := p.pub.Publish(ctx, eventType, e.ID, body); err != nil {
		return apperrors.ErrMQError.WithErr(err)
	}
	p.log.Debug("事件已发布", zap.String("type", eventType), zap.String("event_id", e.ID))
	return nil
}

// LocalPublisher 进程内投递，处理者同步执行
// 不受请求取消影响，处理失败只返回错误不回滚业务
type LocalPublisher struct {
	handler event.Handler
	log     *zap.Logger
}

// NewLocalPublisher 创建进程内事件发布者
func NewLocalPublisher(handler event.Handler, log *zap.Logger) *LocalPublisher {
	return &LocalPublisher{handler: handler, log: log.Named("events")}
}

func (p *LocalPublisher) Publish(ctx context.Context, eventType string, payload any) (err error) {
	defer func() { metrics.ObservePublish(eventType, err) }()

	_, body, err := Encode(eventType, payload)
	if err != nil {
		return apperrors.ErrMQError.WithErr(err)
	}
	var msg event.Message
	if err := json.Unmarshal(body, &msg); err != nil {
		return apperrors.ErrMQError.WithErr(err)
	}

	start := time.Now()
	err = p.handler.Handle(context.WithoutCancel(ctx), msg)
	metrics.ObserveConsume(eventType, time.Since(start), err)
	return err
}
