package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"dayplanner/internal/model"
)

// ReminderService covers user-facing reminder and notification operations.
type ReminderService struct {
	reminders     ReminderStore
	notifications NotificationStore
	logger        *zap.Logger
}

func NewReminderService(reminders ReminderStore, notifications NotificationStore, logger *zap.Logger) *ReminderService {
	return &ReminderService{reminders: reminders, notifications: notifications, logger: logger}
}

func (s *ReminderService) AddReminder(ctx context.Context, userID int, message string, remindAt time.Time) (int, error) {
	if message == "" {
		return 0, errors.New("reminder message is required")
	}

	id, err := s.reminders.Insert(ctx, &model.Reminder{
		UserID:   userID,
		Message:  message,
		RemindAt: remindAt,
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("Reminder added",
		zap.Int("reminder_id", id),
		zap.Int("user_id", userID),
		zap.Time("remind_at", remindAt),
	)
	return id, nil
}

func (s *ReminderService) UnreadNotifications(ctx context.Context, userID int) ([]model.Notification, error) {
	return s.notifications.ListUnread(ctx, userID)
}

func (s *ReminderService) MarkNotificationRead(ctx context.Context, notificationID int) error {
	return s.notifications.MarkRead(ctx, notificationID)
}
