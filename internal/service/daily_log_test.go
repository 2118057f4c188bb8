package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"dayplanner/internal/clock"
	"dayplanner/internal/model"
)

var logDay = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func newAnalyzer(tasks *fakeTaskStore, events *fakeEventStore, logs *fakeDailyLogStore) *DailyLogAnalyzer {
	clk := clock.Func(func() time.Time { return logDay.Add(14 * time.Hour) })
	return NewDailyLogAnalyzer(tasks, events, logs, clk, zap.NewNop())
}

func TestDailyLogScenario(t *testing.T) {
	tasks := &fakeTaskStore{}
	tasks.Insert(context.Background(), &model.Task{
		Title:         "low",
		Deadline:      logDay.Add(10 * time.Hour),
		EstimatedTime: 2,
		Priority:      model.PriorityLow,
	})
	tasks.Insert(context.Background(), &model.Task{
		Title:         "high",
		Deadline:      logDay.Add(16 * time.Hour),
		EstimatedTime: 3,
		Priority:      model.PriorityHigh,
	})

	events := &fakeEventStore{}
	events.UpsertBatch(context.Background(), []model.CalendarEvent{{
		Title:     "meeting",
		StartTime: logDay.Add(9 * time.Hour),
		EndTime:   logDay.Add(10 * time.Hour),
	}})

	logs := &fakeDailyLogStore{}
	a := newAnalyzer(tasks, events, logs)

	require.NoError(t, a.Run(context.Background()))
	require.Len(t, logs.logs, 1)

	want := "Date: 2025-03-10\n" +
		"Total productive time: 6 hours\n" +
		"Low-priority task time: 2 hours\n" +
		"Wasted time % (based on tasks): 40.00%\n" +
		"Calendar Events: 1 events\n" +
		"Tasks: 2 tasks"
	assert.Equal(t, want, logs.logs[0].Content)
	assert.Equal(t, logDay, logs.logs[0].Date)
}

func TestDailyLogNoTasksNoDivideByZero(t *testing.T) {
	logs := &fakeDailyLogStore{}
	a := newAnalyzer(&fakeTaskStore{}, &fakeEventStore{}, logs)

	require.NoError(t, a.Run(context.Background()))
	require.Len(t, logs.logs, 1)
	assert.Contains(t, logs.logs[0].Content, "Wasted time % (based on tasks): 0.00%")
	assert.Contains(t, logs.logs[0].Content, "Tasks: 0 tasks")
}

func TestDailyLogEventHoursTruncate(t *testing.T) {
	events := &fakeEventStore{}
	events.UpsertBatch(context.Background(), []model.CalendarEvent{
		{
			Title:     "ninety minutes",
			StartTime: logDay.Add(9 * time.Hour),
			EndTime:   logDay.Add(9*time.Hour + 90*time.Minute),
		},
		{
			Title:     "forty minutes",
			StartTime: logDay.Add(12 * time.Hour),
			EndTime:   logDay.Add(12*time.Hour + 40*time.Minute),
		},
	})

	logs := &fakeDailyLogStore{}
	a := newAnalyzer(&fakeTaskStore{}, events, logs)

	require.NoError(t, a.Run(context.Background()))
	// 90 minutes counts as 1 hour, 40 minutes as 0.
	assert.Contains(t, logs.logs[0].Content, "Total productive time: 1 hours")
	assert.Contains(t, logs.logs[0].Content, "Calendar Events: 2 events")
}

func TestDailyLogDefaultsMissingEstimateAndPriority(t *testing.T) {
	tasks := &fakeTaskStore{}
	// Zero estimate counts as 1; zero priority counts as High, not wasted.
	tasks.Insert(context.Background(), &model.Task{
		Title:    "bare",
		Deadline: logDay.Add(8 * time.Hour),
	})

	logs := &fakeDailyLogStore{}
	a := newAnalyzer(tasks, &fakeEventStore{}, logs)

	require.NoError(t, a.Run(context.Background()))
	assert.Contains(t, logs.logs[0].Content, "Total productive time: 1 hours")
	assert.Contains(t, logs.logs[0].Content, "Low-priority task time: 0 hours")
}

func TestDailyLogRepeatedRunsAppendRows(t *testing.T) {
	logs := &fakeDailyLogStore{}
	a := newAnalyzer(&fakeTaskStore{}, &fakeEventStore{}, logs)

	// No upsert-by-date guard: two runs for one date leave two rows. This
	// pins the current behavior.
	require.NoError(t, a.Run(context.Background()))
	require.NoError(t, a.Run(context.Background()))
	assert.Len(t, logs.logs, 2)
}

func TestDailyLogIgnoresOtherDays(t *testing.T) {
	tasks := &fakeTaskStore{}
	tasks.Insert(context.Background(), &model.Task{
		Title:         "yesterday",
		Deadline:      logDay.Add(-2 * time.Hour),
		EstimatedTime: 5,
		Priority:      model.PriorityLow,
	})

	logs := &fakeDailyLogStore{}
	a := newAnalyzer(tasks, &fakeEventStore{}, logs)

	require.NoError(t, a.Run(context.Background()))
	assert.Contains(t, logs.logs[0].Content, "Tasks: 0 tasks")
}

func TestDailyLogRunForArbitraryDate(t *testing.T) {
	tasks := &fakeTaskStore{}
	past := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
	tasks.Insert(context.Background(), &model.Task{
		Title:         "old",
		Deadline:      past.Add(9 * time.Hour),
		EstimatedTime: 2,
		Priority:      model.PriorityMedium,
	})

	logs := &fakeDailyLogStore{}
	a := newAnalyzer(tasks, &fakeEventStore{}, logs)

	require.NoError(t, a.RunFor(context.Background(), past.Add(30*time.Minute)))
	require.Len(t, logs.logs, 1)
	assert.Contains(t, logs.logs[0].Content, "Date: 2025-01-05")
	assert.Contains(t, logs.logs[0].Content, "Low-priority task time: 2 hours")
	assert.Contains(t, logs.logs[0].Content, "Wasted time % (based on tasks): 100.00%")
}
