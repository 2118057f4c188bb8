package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"dayplanner/internal/clock"
	"dayplanner/internal/model"
)

// DailyLogAnalyzer aggregates one day's tasks and calendar events into a
// summary row. Scheduled nightly but also invokable for an arbitrary date.
type DailyLogAnalyzer struct {
	tasks  TaskStore
	events EventStore
	logs   DailyLogStore
	clock  clock.Clock
	logger *zap.Logger
}

func NewDailyLogAnalyzer(tasks TaskStore, events EventStore, logs DailyLogStore, clk clock.Clock, logger *zap.Logger) *DailyLogAnalyzer {
	return &DailyLogAnalyzer{tasks: tasks, events: events, logs: logs, clock: clk, logger: logger}
}

// Run analyzes the current UTC date.
func (a *DailyLogAnalyzer) Run(ctx context.Context) error {
	return a.RunFor(ctx, a.clock.Now().UTC())
}

// RunFor analyzes the date the given time falls on.
func (a *DailyLogAnalyzer) RunFor(ctx context.Context, date time.Time) error {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	next := day.Add(24 * time.Hour)

	tasks, err := a.tasks.ListDeadlineBetween(ctx, day, next)
	if err != nil {
		return fmt.Errorf("list tasks for %s: %w", day.Format("2006-01-02"), err)
	}
	events, err := a.events.ListStartBetween(ctx, day, next)
	if err != nil {
		return fmt.Errorf("list events for %s: %w", day.Format("2006-01-02"), err)
	}

	totalTaskTime := 0
	wastedTaskTime := 0
	for _, t := range tasks {
		est := int(t.EstimatedTime)
		if t.EstimatedTime == 0 {
			est = model.DefaultEstimatedTime
		}
		priority := t.Priority.Level()
		if priority == 0 {
			priority = int(model.PriorityHigh)
		}
		totalTaskTime += est
		if priority <= model.PriorityMedium.Level() {
			wastedTaskTime += est
		}
	}

	// Whole hours only; a sub-hour event contributes nothing.
	eventTime := 0
	for _, e := range events {
		eventTime += int(e.EndTime.Sub(e.StartTime).Hours())
	}

	totalTimeSpent := totalTaskTime + eventTime
	wastedPercentage := 0.0
	if totalTaskTime > 0 {
		wastedPercentage = float64(wastedTaskTime) / float64(totalTaskTime) * 100
	}

	content := fmt.Sprintf(
		"Date: %s\n"+
			"Total productive time: %d hours\n"+
			"Low-priority task time: %d hours\n"+
			"Wasted time %% (based on tasks): %.2f%%\n"+
			"Calendar Events: %d events\n"+
			"Tasks: %d tasks",
		day.Format("2006-01-02"), totalTimeSpent, wastedTaskTime, wastedPercentage, len(events), len(tasks),
	)

	if _, err := a.logs.Insert(ctx, &model.DailyLog{Date: day, Content: content}); err != nil {
		return fmt.Errorf("insert daily log: %w", err)
	}

	a.logger.Info("Daily log analysis completed",
		zap.String("date", day.Format("2006-01-02")),
		zap.Int("tasks", len(tasks)),
		zap.Int("events", len(events)),
		zap.Float64("wasted_percentage", wastedPercentage),
	)
	return nil
}
