// Package mq RabbitMQ发布与消费的薄封装
//
// 使用topic类型的Exchange，routing key即事件类型（如order.created），
// 消费者按通配符绑定（如order.*）。消息持久化，消费者手动确认。
package mq

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const exchangeType = "topic"

// Publisher 消息发布者
type Publisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	log      *zap.Logger
}

// NewPublisher 连接RabbitMQ并声明Exchange
func NewPublisher(url, exchange string, log *zap.Logger) (*Publisher, error) {
	conn, channel, err := dial(url, exchange)
	if err != nil {
		return nil, err
	}
	log.Info("消息发布者已创建", zap.String("exchange", exchange))
	return &Publisher{conn: conn, channel: channel, exchange: exchange, log: log}, nil
}

// Publish 发布一条JSON消息
func (p *Publisher) Publish(ctx context.Context, routingKey, messageID string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	err := p.channel.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		MessageId:    messageID,
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
	})
	if err != nil {
		return fmt.Errorf("发布消息失败: %w", err)
	}
	p.log.Debug("消息已发布", zap.String("routing_key", routingKey), zap.String("message_id", messageID))
	return nil
}

// Close 关闭Channel和连接
func (p *Publisher) Close() error {
	return closeAll(p.channel, p.conn)
}

// Delivery 收到的消息
type Delivery struct {
	RoutingKey  string
	MessageID   string
	Body        []byte
	Redelivered bool
}

// Handler 消息处理函数，返回错误时消息会被重新投递一次
type Handler func(ctx context.Context, d Delivery) error

// Consumer 消息消费者
type Consumer struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	log     *zap.Logger
}

// NewConsumer 声明Exchange和持久化队列，并按routingKeys绑定
func NewConsumer(url, exchange, queue string, routingKeys []string, log *zap.Logger) (*Consumer, error) {
	conn, channel, err := dial(url, exchange)
	if err != nil {
		return nil, err
	}

	q, err := channel.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		_ = closeAll(channel, conn)
		return nil, fmt.Errorf("声明Queue失败: %w", err)
	}
	for _, key := range routingKeys {
		if err := channel.QueueBind(q.Name, key, exchange, false, nil); err != nil {
			_ = closeAll(channel, conn)
			return nil, fmt.Errorf("绑定Queue失败: %w", err)
		}
	}

	log.Info("消息消费者已创建", zap.String("queue", q.Name), zap.Strings("routing_keys", routingKeys))
	return &Consumer{conn: conn, channel: channel, queue: q.Name, log: log}, nil
}

// Consume 阻塞消费，直到ctx取消或连接断开
func (c *Consumer) Consume(ctx context.Context, handler Handler) error {
	if err := c.channel.Qos(1, 0, false); err != nil {
		return fmt.Errorf("设置Qos失败: %w", err)
	}
	msgs, err := c.channel.ConsumeWithContext(ctx, c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("开始消费失败: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			c.log.Info("消费者退出", zap.String("queue", c.queue))
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return errors.New("消息Channel已关闭")
			}
			d := Delivery{
				RoutingKey:  msg.RoutingKey,
				MessageID:   msg.MessageId,
				Body:        msg.Body,
				Redelivered: msg.Redelivered,
			}
			herr := handler(ctx, d)
			c.settle(msg, Decide(d.Redelivered, herr), herr)
		}
	}
}

func (c *Consumer) settle(msg amqp.Delivery, action Action, herr error) {
	fields := []zap.Field{zap.String("routing_key", msg.RoutingKey), zap.String("message_id", msg.MessageId)}
	var err error
	switch action {
	case ActionAck:
		err = msg.Ack(false)
	case ActionRequeue:
		c.log.Warn("消息处理失败，重新入队", append(fields, zap.Error(herr))...)
		err = msg.Nack(false, true)
	case ActionDrop:
		c.log.Error("消息重试后仍失败，丢弃", append(fields, zap.Error(herr))...)
		err = msg.Nack(false, false)
	}
	if err != nil {
		c.log.Warn("确认消息失败", append(fields, zap.Error(err))...)
	}
}

// Close 关闭Channel和连接
func (c *Consumer) Close() error {
	return closeAll(c.channel, c.conn)
}

// Action 消息处理后的确认方式
type Action int

const (
	ActionAck Action = iota
	ActionRequeue
	ActionDrop
)

// Decide 处理成功则确认；首次失败重新入队；重投后仍失败则丢弃，避免毒消息无限循环
func Decide(redelivered bool, err error) Action {
	switch {
	case err == nil:
		return ActionAck
	case redelivered:
		return ActionDrop
	default:
		return ActionRequeue
	}
}

func dial(url, exchange string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("连接RabbitMQ失败: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("创建Channel失败: %w", err)
	}
	if err := channel.ExchangeDeclare(exchange, exchangeType, true, false, false, false, nil); err != nil {
		_ = closeAll(channel, conn)
		return nil, nil, fmt.Errorf("声明Exchange失败: %w", err)
	}
	return conn, channel, nil
}

func closeAll(channel *amqp.Channel, conn *amqp.Connection) error {
	var errs []error
	if channel != nil {
		errs = append(errs, channel.Close())
	}
	if conn != nil {
		errs = append(errs, conn.Close())
	}
	return errors.Join(errs...)
}
