package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"dayplanner/internal/classifier"
	"dayplanner/internal/clock"
	"dayplanner/internal/model"
)

func newTaskService(tasks *fakeTaskStore) *TaskService {
	clk := clock.Func(func() time.Time {
		return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	})
	return NewTaskService(tasks, classifier.New(clk), zap.NewNop())
}

func TestCreateTaskAssignsPriorityAndDefaults(t *testing.T) {
	tasks := &fakeTaskStore{}
	s := newTaskService(tasks)

	task, err := s.Create(context.Background(), CreateTaskInput{
		Title:           "File taxes",
		Deadline:        "2025-03-10T14:00",
		ImportanceLevel: 5,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, task.ID)
	assert.Equal(t, model.PriorityHigh, task.Priority)
	assert.Equal(t, float64(1), task.EstimatedTime)
	assert.Equal(t, "General", task.Category)
	assert.Equal(t, model.StatusPending, task.Status)
	assert.Len(t, tasks.tasks, 1)
}

func TestCreateTaskRejectsBadDeadline(t *testing.T) {
	tasks := &fakeTaskStore{}
	s := newTaskService(tasks)

	_, err := s.Create(context.Background(), CreateTaskInput{
		Title:    "Broken",
		Deadline: "next tuesday",
	})
	require.Error(t, err)
	assert.Empty(t, tasks.tasks)
}

func TestUpdateStatusAndPriority(t *testing.T) {
	tasks := &fakeTaskStore{}
	s := newTaskService(tasks)

	task, err := s.Create(context.Background(), CreateTaskInput{
		Title:    "Walk dog",
		Deadline: "2025-03-11T09:00",
	})
	require.NoError(t, err)

	require.NoError(t, s.UpdateStatus(context.Background(), task.ID, "done"))
	require.NoError(t, s.UpdatePriority(context.Background(), task.ID, model.PriorityLow))

	assert.Equal(t, "done", tasks.tasks[0].Status)
	assert.Equal(t, model.PriorityLow, tasks.tasks[0].Priority)
}
