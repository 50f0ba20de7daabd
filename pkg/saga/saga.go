// Package saga 顺序执行的多步操作，任一步失败时按相反顺序补偿已完成的步骤
//
// 典型用法：先上传文件再更新数据库，数据库更新失败时删除已上传的文件。
//
//	s := saga.New("profile-image", log)
//	s.AddStep("upload", upload, deleteObject)
//	s.AddStep("update-user", updateUser, nil)
//	err := s.Execute(ctx)
package saga

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/educonnect/pkg/metrics"
)

// 补偿使用独立的超时，不受原请求取消影响
const compensateTimeout = 10 * time.Second

// Step 一个步骤
type Step struct {
	Name       string
	Action     func(ctx context.Context) error
	Compensate func(ctx context.Context) error // 可以为nil
}

// Saga 非并发安全，每次业务调用新建一个
type Saga struct {
	name  string
	log   *zap.Logger
	steps []Step
}

// New 创建Saga
func New(name string, log *zap.Logger) *Saga {
	return &Saga{name: name, log: log}
}

// AddStep 追加步骤
func (s *Saga) AddStep(name string, action, compensate func(ctx context.Context) error) *Saga {
	s.steps = append(s.steps, Step{Name: name, Action: action, Compensate: compensate})
	return s
}

// Execute 依次执行所有步骤
// 返回的错误包装了失败步骤的原始错误，可用errors.Is/As判断
func (s *Saga) Execute(ctx context.Context) error {
	done := make([]Step, 0, len(s.steps))

	for _, step := range s.steps {
		if err := ctx.Err(); err != nil {
			s.compensate(ctx, done)
			return fmt.Errorf("saga %s 已取消: %w", s.name, err)
		}
		if err := step.Action(ctx); err != nil {
			s.log.Warn("saga步骤失败，开始补偿",
				zap.String("saga", s.name),
				zap.String("step", step.Name),
				zap.Error(err),
			)
			s.compensate(ctx, done)
			return err
		}
		done = append(done, step)
	}

	metrics.ObserveSaga(s.name, false)
	return nil
}

func (s *Saga) compensate(ctx context.Context, done []Step) {
	metrics.ObserveSaga(s.name, true)

	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), compensateTimeout)
	defer cancel()

	for i := len(done) - 1; i >= 0; i-- {
		step := done[i]
		if step.Compensate == nil {
			continue
		}
		if err := step.Compensate(cctx); err != nil {
			// 补偿失败只能记录，由人工处理残留数据
			s.log.Error("saga补偿失败",
				zap.String("saga", s.name),
				zap.String("step", step.Name),
				zap.Error(err),
			)
		}
	}
}
