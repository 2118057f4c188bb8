package service

import (
	"context"
	"time"

	"dayplanner/internal/model"
)

// Store interfaces consumed by the services. The pgx repositories in
// internal/repository satisfy them; tests use in-memory fakes.

type TaskStore interface {
	Insert(ctx context.Context, t *model.Task) (int, error)
	InsertBatch(ctx context.Context, tasks []model.Task) error
	ExistsByTitleAndDeadline(ctx context.Context, title string, deadline time.Time) (bool, error)
	ListDeadlineBetween(ctx context.Context, start, end time.Time) ([]model.Task, error)
	ListDueSoonUnreminded(ctx context.Context, cutoff time.Time) ([]model.Task, error)
	MarkReminded(ctx context.Context, taskID int) error
	UpdateStatus(ctx context.Context, taskID int, status string) error
	UpdatePriority(ctx context.Context, taskID int, p model.Priority) error
}

type EventStore interface {
	UpsertBatch(ctx context.Context, events []model.CalendarEvent) (int, error)
	ListAll(ctx context.Context) ([]model.CalendarEvent, error)
	ListStartBetween(ctx context.Context, start, end time.Time) ([]model.CalendarEvent, error)
}

type EmailStore interface {
	UpsertBatch(ctx context.Context, emails []model.Email) ([]int, error)
}

type ContactStore interface {
	UpsertBatch(ctx context.Context, contacts []model.Contact) (int, error)
}

type ReminderStore interface {
	Insert(ctx context.Context, r *model.Reminder) (int, error)
	ListDue(ctx context.Context, now time.Time) ([]model.Reminder, error)
	CompleteSweep(ctx context.Context, notifs []model.Notification, reminderIDs []int) error
}

type NotificationStore interface {
	ListUnread(ctx context.Context, userID int) ([]model.Notification, error)
	MarkRead(ctx context.Context, notificationID int) error
}

type DailyLogStore interface {
	Insert(ctx context.Context, l *model.DailyLog) (int, error)
}
