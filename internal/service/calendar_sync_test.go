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
	"dayplanner/internal/extract"
	"dayplanner/internal/model"
)

var syncBase = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type noDateResolver struct{}

func (noDateResolver) Resolve(text string, base time.Time) (time.Time, bool) {
	return time.Time{}, false
}

func newSync(events *fakeEventStore, tasks *fakeTaskStore) *CalendarTaskSync {
	clk := clock.Func(func() time.Time { return syncBase })
	ex := extract.New(noDateResolver{}, clk, zap.NewNop())
	cls := classifier.New(clk)
	return NewCalendarTaskSync(events, tasks, ex, cls, clk, zap.NewNop())
}

func TestRunConvertsEventsToTasks(t *testing.T) {
	events := &fakeEventStore{}
	start := syncBase.Add(2 * time.Hour)
	events.UpsertBatch(context.Background(), []model.CalendarEvent{{
		Title:       "Project review",
		Description: "quarterly",
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
	}})

	tasks := &fakeTaskStore{}
	s := newSync(events, tasks)

	require.NoError(t, s.Run(context.Background()))
	require.Len(t, tasks.tasks, 1)

	task := tasks.tasks[0]
	assert.Equal(t, "Project review", task.Title)
	assert.Equal(t, "quarterly", task.Description)
	assert.Equal(t, start, task.Deadline)
	assert.Equal(t, "Calendar", task.Category)
	assert.Equal(t, "Pending", task.Status)
	assert.Equal(t, float64(1), task.EstimatedTime)
	assert.Equal(t, 3, task.ImportanceLevel)
	// 2h out with neutral effort/importance lands closest to the urgent row.
	assert.Equal(t, model.PriorityHigh, task.Priority)
}

func TestRunSkipsEventsAlreadyConverted(t *testing.T) {
	events := &fakeEventStore{}
	start := syncBase.Add(4 * time.Hour)
	events.UpsertBatch(context.Background(), []model.CalendarEvent{{
		Title:     "Dentist",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
	}})

	tasks := &fakeTaskStore{}
	s := newSync(events, tasks)

	require.NoError(t, s.Run(context.Background()))
	require.NoError(t, s.Run(context.Background()))
	assert.Len(t, tasks.tasks, 1)
}

func TestRunSkipsDistinctEventSameTitle(t *testing.T) {
	// Same title at a different start time is a different event and converts
	// separately.
	events := &fakeEventStore{}
	events.UpsertBatch(context.Background(), []model.CalendarEvent{
		{Title: "Standup", StartTime: syncBase.Add(24 * time.Hour), EndTime: syncBase.Add(25 * time.Hour)},
		{Title: "Standup", StartTime: syncBase.Add(48 * time.Hour), EndTime: syncBase.Add(49 * time.Hour)},
	})

	tasks := &fakeTaskStore{}
	s := newSync(events, tasks)

	require.NoError(t, s.Run(context.Background()))
	assert.Len(t, tasks.tasks, 2)
}

func TestCheckDueSoonFlagsWithoutNotification(t *testing.T) {
	tasks := &fakeTaskStore{}
	tasks.Insert(context.Background(), &model.Task{
		Title:    "about to be due",
		Deadline: syncBase.Add(30 * time.Second),
	})
	tasks.Insert(context.Background(), &model.Task{
		Title:    "far off",
		Deadline: syncBase.Add(2 * time.Hour),
	})
	tasks.Insert(context.Background(), &model.Task{
		Title:    "already flagged",
		Deadline: syncBase.Add(-time.Minute),
		Reminded: true,
	})

	s := newSync(&fakeEventStore{}, tasks)

	require.NoError(t, s.CheckDueSoon(context.Background()))
	assert.True(t, tasks.tasks[0].Reminded)
	assert.False(t, tasks.tasks[1].Reminded)

	// A second pass has nothing left to flag.
	require.NoError(t, s.CheckDueSoon(context.Background()))
}
