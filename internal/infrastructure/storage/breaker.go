package storage

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/xiebiao/educonnect/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/educonnect/pkg/errors"
	"github.com/xiebiao/educonnect/pkg/metrics"
)

// BreakerStore 在熔断器保护下访问对象存储
// MinIO不可用时快速失败，不让上传请求堆积在超时上
type BreakerStore struct {
	next    ObjectStore
	breaker *circuitbreaker.Breaker
}

// NewBreakerStore 包装对象存储
func NewBreakerStore(next ObjectStore, log *zap.Logger) *BreakerStore {
	b := circuitbreaker.New("object-storage", circuitbreaker.Settings{
		FailureThreshold: 5,
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			log.Warn("熔断器状态变化",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			metrics.SetBreakerState(name, int(to))
		},
	})
	return &BreakerStore{next: next, breaker: b}
}

func (s *BreakerStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	var url string
	err := s.breaker.Do(ctx, func(ctx context.Context) error {
		var err error
		url, err = s.next.Put(ctx, key, r, size, contentType)
		return err
	})
	if err != nil {
		return "", wrapStorageError(err)
	}
	return url, nil
}

func (s *BreakerStore) Delete(ctx context.Context, key string) error {
	err := s.breaker.Do(ctx, func(ctx context.Context) error {
		return s.next.Delete(ctx, key)
	})
	return wrapStorageError(err)
}

func wrapStorageError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, circuitbreaker.ErrOpenState) {
		return apperrors.ErrStorageError.WithMessage("文件服务暂不可用，请稍后重试").WithErr(err)
	}
	return apperrors.ErrStorageError.WithErr(err)
}
