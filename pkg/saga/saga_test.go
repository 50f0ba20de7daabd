package saga

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func record(trace *[]string, name string, err error) func(context.Context) error {
	return func(context.Context) error {
		*trace = append(*trace, name)
		return err
	}
}

// TestSaga_AllStepsSucceed 全部成功时不执行补偿
func TestSaga_AllStepsSucceed(t *testing.T) {
	var trace []string
	s := New("test", zap.NewNop()).
		AddStep("upload", record(&trace, "upload", nil), record(&trace, "delete", nil)).
		AddStep("update", record(&trace, "update", nil), nil)

	require.NoError(t, s.Execute(context.Background()))
	assert.Equal(t, []string{"upload", "update"}, trace)
}

// TestSaga_CompensatesInReverseOrder 失败步骤之前的步骤按相反顺序补偿
func TestSaga_CompensatesInReverseOrder(t *testing.T) {
	var trace []string
	errUpdate := errors.New("version conflict")
	s := New("test", zap.NewNop()).
		AddStep("a", record(&trace, "a", nil), record(&trace, "undo-a", nil)).
		AddStep("b", record(&trace, "b", nil), record(&trace, "undo-b", nil)).
		AddStep("c", record(&trace, "c", errUpdate), record(&trace, "undo-c", nil))

	err := s.Execute(context.Background())
	assert.ErrorIs(t, err, errUpdate)
	// 失败的步骤自身不补偿
	assert.Equal(t, []string{"a", "b", "c", "undo-b", "undo-a"}, trace)
}

// TestSaga_CompensationFailureContinues 某个补偿失败不影响其余补偿
func TestSaga_CompensationFailureContinues(t *testing.T) {
	var trace []string
	s := New("test", zap.NewNop()).
		AddStep("a", record(&trace, "a", nil), record(&trace, "undo-a", nil)).
		AddStep("b", record(&trace, "b", nil), record(&trace, "undo-b", errors.New("minio down"))).
		AddStep("c", record(&trace, "c", errors.New("boom")), nil)

	assert.Error(t, s.Execute(context.Background()))
	assert.Equal(t, []string{"a", "b", "c", "undo-b", "undo-a"}, trace)
}

// TestSaga_CanceledContext 请求取消后停止执行，并用未取消的context补偿
func TestSaga_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var compensateErr error

	s := New("test", zap.NewNop()).
		AddStep("a",
			func(context.Context) error { cancel(); return nil },
			func(c context.Context) error { compensateErr = c.Err(); return nil },
		).
		AddStep("b", func(context.Context) error {
			t.Fatal("取消后不应继续执行")
			return nil
		}, nil)

	err := s.Execute(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoError(t, compensateErr)
}
