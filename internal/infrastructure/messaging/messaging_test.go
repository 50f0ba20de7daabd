package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/educonnect/internal/domain/event"
	apperrors "github.com/xiebiao/educonnect/pkg/errors"
	"github.com/xiebiao/educonnect/pkg/mq"
)

type capturePublisher struct {
	routingKey string
	messageID  string
	body       []byte
	err        error
}

func (c *capturePublisher) Publish(_ context.Context, routingKey, messageID string, body []byte) error {
	c.routingKey, c.messageID, c.body = routingKey, messageID, body
	return c.err
}

type recordHandler struct {
	msgs []event.Message
	err  error
	ctx  context.Context
}

func (h *recordHandler) Handle(ctx context.Context, msg event.Message) error {
	h.ctx = ctx
	h.msgs = append(h.msgs, msg)
	return h.err
}

func TestRabbitPublisher_Publish(t *testing.T) {
	capture := &capturePublisher{}
	p := NewRabbitPublisher(capture, zap.NewNop())

	payload := event.UserStatusChangedPayload{UserID: 7, OldStatus: "PENDING", NewStatus: "APPROVED"}
	require.NoError(t, p.Publish(context.Background(), event.UserStatusChanged, payload))

	assert.Equal(t, event.UserStatusChanged, capture.routingKey)
	assert.NotEmpty(t, capture.messageID)

	var msg event.Message
	require.NoError(t, json.Unmarshal(capture.body, &msg))
	assert.Equal(t, capture.messageID, msg.ID)
	assert.Equal(t, event.UserStatusChanged, msg.Type)

	var got event.UserStatusChangedPayload
	require.NoError(t, msg.Decode(&got))
	assert.Equal(t, payload, got)
}

func TestRabbitPublisher_PublishError(t *testing.T) {
	p := NewRabbitPublisher(&capturePublisher{err: errors.New("channel closed")}, zap.NewNop())
	err := p.Publish(context.Background(), event.OrderCreated, event.OrderCreatedPayload{OrderID: 1})
	assert.True(t, errors.Is(err, apperrors.ErrMQError))
}

func TestLocalPublisher_DeliversDecodedMessage(t *testing.T) {
	h := &recordHandler{}
	p := NewLocalPublisher(h, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	payload := event.OrderCreatedPayload{OrderID: 3, OrderNo: "EDU1", PublisherIDs: []uint{1, 2}}
	require.NoError(t, p.Publish(ctx, event.OrderCreated, payload))

	require.Len(t, h.msgs, 1)
	assert.Equal(t, event.OrderCreated, h.msgs[0].Type)
	// 请求已取消，处理者仍可继续写库
	assert.NoError(t, h.ctx.Err())

	var got event.OrderCreatedPayload
	require.NoError(t, h.msgs[0].Decode(&got))
	assert.Equal(t, payload, got)
}

func TestDispatch(t *testing.T) {
	h := &recordHandler{}
	handle := Dispatch(h, zap.NewNop())

	_, body, err := Encode(event.OrderStatusChanged, event.OrderStatusChangedPayload{OrderID: 9})
	require.NoError(t, err)
	require.NoError(t, handle(context.Background(), mq.Delivery{RoutingKey: event.OrderStatusChanged, Body: body}))
	require.Len(t, h.msgs, 1)
	assert.Equal(t, event.OrderStatusChanged, h.msgs[0].Type)
}

func TestDispatch_MalformedMessageIsAcked(t *testing.T) {
	h := &recordHandler{}
	handle := Dispatch(h, zap.NewNop())

	assert.NoError(t, handle(context.Background(), mq.Delivery{RoutingKey: "order.created", Body: []byte("{oops")}))
	assert.Empty(t, h.msgs)
}

func TestDispatch_HandlerErrorPropagates(t *testing.T) {
	h := &recordHandler{err: errors.New("db down")}
	handle := Dispatch(h, zap.NewNop())

	_, body, err := Encode(event.UserStatusChanged, event.UserStatusChangedPayload{UserID: 1})
	require.NoError(t, err)
	assert.Error(t, handle(context.Background(), mq.Delivery{Body: body}))
}
