package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"dayplanner/internal/clock"
	"dayplanner/internal/model"
	"dayplanner/pkg/metrics"
)

// ReminderSweeper finds fired reminders and turns each into a notification.
// One tick commits as a single batch; the is_sent guard makes repeated
// sweeps idempotent.
type ReminderSweeper struct {
	store  ReminderStore
	clock  clock.Clock
	logger *zap.Logger
}

func NewReminderSweeper(store ReminderStore, clk clock.Clock, logger *zap.Logger) *ReminderSweeper {
	return &ReminderSweeper{store: store, clock: clk, logger: logger}
}

func (s *ReminderSweeper) Run(ctx context.Context) error {
	now := s.clock.Now()

	due, err := s.store.ListDue(ctx, now)
	if err != nil {
		return fmt.Errorf("list due reminders: %w", err)
	}
	if len(due) == 0 {
		s.logger.Debug("No due reminders")
		return nil
	}

	notifs := make([]model.Notification, 0, len(due))
	ids := make([]int, 0, len(due))
	for _, r := range due {
		notifs = append(notifs, model.Notification{
			UserID:  r.UserID,
			Message: "Reminder: " + r.Message,
		})
		ids = append(ids, r.ID)
	}

	if err := s.store.CompleteSweep(ctx, notifs, ids); err != nil {
		return fmt.Errorf("complete reminder sweep: %w", err)
	}

	metrics.RemindersSwept.Add(float64(len(due)))
	s.logger.Info("Checked reminders", zap.Int("notifications_sent", len(due)))
	return nil
}
