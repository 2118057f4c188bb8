package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"dayplanner/internal/classifier"
	"dayplanner/internal/clock"
	"dayplanner/internal/extract"
	"dayplanner/internal/model"
	"dayplanner/pkg/metrics"
)

// CalendarTaskSync converts stored calendar events into tasks, skipping
// events that already produced one, and flags tasks whose deadline is about
// to pass.
type CalendarTaskSync struct {
	events     EventStore
	tasks      TaskStore
	extractor  *extract.Extractor
	classifier *classifier.Classifier
	clock      clock.Clock
	logger     *zap.Logger
}

func NewCalendarTaskSync(
	events EventStore,
	tasks TaskStore,
	extractor *extract.Extractor,
	cls *classifier.Classifier,
	clk clock.Clock,
	logger *zap.Logger,
) *CalendarTaskSync {
	return &CalendarTaskSync{
		events:     events,
		tasks:      tasks,
		extractor:  extractor,
		classifier: cls,
		clock:      clk,
		logger:     logger,
	}
}

// Run converts all known events to tasks. New tasks commit as one batch.
func (s *CalendarTaskSync) Run(ctx context.Context) error {
	events, err := s.events.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list calendar events: %w", err)
	}

	newTasks := []model.Task{}
	for _, ev := range events {
		exists, err := s.tasks.ExistsByTitleAndDeadline(ctx, ev.Title, ev.StartTime)
		if err != nil {
			return fmt.Errorf("check task for event %q: %w", ev.Title, err)
		}
		if exists {
			continue
		}

		cand := s.extractor.FromEvent(ev)
		priority := s.classifier.PredictAt(cand.Deadline, cand.EstimatedTime, cand.ImportanceLevel)
		newTasks = append(newTasks, taskFromCandidate(cand, priority))
	}

	if len(newTasks) == 0 {
		s.logger.Debug("No new calendar events to convert")
		return nil
	}

	if err := s.tasks.InsertBatch(ctx, newTasks); err != nil {
		return fmt.Errorf("insert tasks from events: %w", err)
	}

	metrics.TasksCreated.WithLabelValues("calendar").Add(float64(len(newTasks)))
	s.logger.Info("Converted calendar events to tasks", zap.Int("count", len(newTasks)))
	return nil
}

// CheckDueSoon flags tasks whose deadline falls within the next minute.
// This path only flips the reminded bit, per task; it never writes a
// Notification (that is the reminder sweeper's job).
func (s *CalendarTaskSync) CheckDueSoon(ctx context.Context) error {
	cutoff := s.clock.Now().Add(time.Minute)

	due, err := s.tasks.ListDueSoonUnreminded(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("list due-soon tasks: %w", err)
	}

	for _, t := range due {
		s.logger.Info("Task due soon",
			zap.String("title", t.Title),
			zap.Time("deadline", t.Deadline),
		)
		if err := s.tasks.MarkReminded(ctx, t.ID); err != nil {
			return fmt.Errorf("mark task %d reminded: %w", t.ID, err)
		}
	}
	return nil
}

func taskFromCandidate(c extract.Candidate, p model.Priority) model.Task {
	return model.Task{
		Title:           c.Title,
		Description:     c.Description,
		Deadline:        c.Deadline,
		EstimatedTime:   c.EstimatedTime,
		ImportanceLevel: c.ImportanceLevel,
		Category:        c.Category,
		Priority:        p,
		Status:          c.Status,
	}
}
