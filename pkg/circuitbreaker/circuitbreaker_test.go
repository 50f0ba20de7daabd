package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDownstream = errors.New("minio unavailable")

func newTestBreaker(threshold uint32) (*Breaker, *time.Time) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b := New("test", Settings{FailureThreshold: threshold, Cooldown: 10 * time.Second})
	b.now = func() time.Time { return now }
	return b, &now
}

func fail(context.Context) error    { return errDownstream }
func succeed(context.Context) error { return nil }

// TestBreaker_StaysClosedOnSuccess 成功请求不会触发熔断
func TestBreaker_StaysClosedOnSuccess(t *testing.T) {
	b, _ := newTestBreaker(3)
	for i := 0; i < 10; i++ {
		require.NoError(t, b.Do(context.Background(), succeed))
	}
	assert.Equal(t, StateClosed, b.State())
	assert.Equal(t, uint32(10), b.Counts().Successes)
}

// TestBreaker_OpensAfterConsecutiveFailures 连续失败达到阈值后熔断，后续请求不执行
func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	b, _ := newTestBreaker(3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, b.Do(ctx, fail), errDownstream)
	}
	assert.Equal(t, StateOpen, b.State())

	called := false
	err := b.Do(ctx, func(context.Context) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrOpenState)
	assert.False(t, called)
}

// TestBreaker_SuccessResetsConsecutiveFailures 中间一次成功会清零连续失败
func TestBreaker_SuccessResetsConsecutiveFailures(t *testing.T) {
	b, _ := newTestBreaker(3)
	ctx := context.Background()

	_ = b.Do(ctx, fail)
	_ = b.Do(ctx, fail)
	require.NoError(t, b.Do(ctx, succeed))
	_ = b.Do(ctx, fail)
	_ = b.Do(ctx, fail)

	assert.Equal(t, StateClosed, b.State())
}

// TestBreaker_HalfOpenRecovers 冷却后探测成功则恢复
func TestBreaker_HalfOpenRecovers(t *testing.T) {
	b, now := newTestBreaker(1)
	ctx := context.Background()

	_ = b.Do(ctx, fail)
	require.Equal(t, StateOpen, b.State())

	*now = now.Add(11 * time.Second)
	assert.Equal(t, StateHalfOpen, b.State())

	require.NoError(t, b.Do(ctx, succeed))
	assert.Equal(t, StateClosed, b.State())
}

// TestBreaker_HalfOpenFailureReopens 探测失败重新熔断
func TestBreaker_HalfOpenFailureReopens(t *testing.T) {
	b, now := newTestBreaker(1)
	ctx := context.Background()

	_ = b.Do(ctx, fail)
	*now = now.Add(11 * time.Second)

	assert.ErrorIs(t, b.Do(ctx, fail), errDownstream)
	assert.Equal(t, StateOpen, b.State())
	assert.ErrorIs(t, b.Do(ctx, succeed), ErrOpenState)
}

// TestBreaker_HalfOpenLimitsRequests 半开状态只放行有限的探测请求
func TestBreaker_HalfOpenLimitsRequests(t *testing.T) {
	b, now := newTestBreaker(1)
	ctx := context.Background()

	_ = b.Do(ctx, fail)
	*now = now.Add(11 * time.Second)

	var nested error
	require.NoError(t, b.Do(ctx, func(context.Context) error {
		nested = b.Do(ctx, succeed)
		return nil
	}))
	assert.ErrorIs(t, nested, ErrOpenState)
	assert.Equal(t, StateClosed, b.State())
}

// TestBreaker_CanceledNotCounted 调用方取消不计入失败
func TestBreaker_CanceledNotCounted(t *testing.T) {
	b, _ := newTestBreaker(1)
	err := b.Do(context.Background(), func(context.Context) error { return context.Canceled })
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StateClosed, b.State())
}

func TestBreaker_StateChangeCallback(t *testing.T) {
	var transitions []string
	b := New("storage", Settings{
		FailureThreshold: 1,
		OnStateChange: func(name string, from, to State) {
			transitions = append(transitions, name+":"+from.String()+"->"+to.String())
		},
	})

	_ = b.Do(context.Background(), fail)
	assert.Equal(t, []string{"storage:CLOSED->OPEN"}, transitions)
}
