package job

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"microposts-backend/internal/shared"
)

type MockPruner struct {
	mock.Mock
}

func (m *MockPruner) Prune(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func TestPruneEventsHandler_ProcessTask(t *testing.T) {
	pruner := new(MockPruner)
	pruner.On("Prune", mock.Anything).Return(int64(7), nil).Once()

	handler := NewPruneEventsHandler(pruner)
	err := handler.ProcessTask(context.Background(), asynq.NewTask(shared.TypePruneAdmissionEvents, nil))

	require.NoError(t, err)
	pruner.AssertExpectations(t)
}

func TestPruneEventsHandler_ProcessTask_Error(t *testing.T) {
	pruner := new(MockPruner)
	pruner.On("Prune", mock.Anything).Return(int64(0), errors.New("db down")).Once()

	handler := NewPruneEventsHandler(pruner)
	err := handler.ProcessTask(context.Background(), asynq.NewTask(shared.TypePruneAdmissionEvents, nil))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}
