package service

import (
	"context"
	"errors"
	"time"

	"dayplanner/internal/model"
)

type fakeTaskStore struct {
	tasks  []model.Task
	nextID int
}

func (f *fakeTaskStore) Insert(ctx context.Context, t *model.Task) (int, error) {
	f.nextID++
	t.ID = f.nextID
	f.tasks = append(f.tasks, *t)
	return t.ID, nil
}

func (f *fakeTaskStore) InsertBatch(ctx context.Context, tasks []model.Task) error {
	for i := range tasks {
		f.nextID++
		tasks[i].ID = f.nextID
		f.tasks = append(f.tasks, tasks[i])
	}
	return nil
}

func (f *fakeTaskStore) ExistsByTitleAndDeadline(ctx context.Context, title string, deadline time.Time) (bool, error) {
	for _, t := range f.tasks {
		if t.Title == title && t.Deadline.Equal(deadline) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTaskStore) ListDeadlineBetween(ctx context.Context, start, end time.Time) ([]model.Task, error) {
	out := []model.Task{}
	for _, t := range f.tasks {
		if !t.Deadline.Before(start) && t.Deadline.Before(end) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTaskStore) ListDueSoonUnreminded(ctx context.Context, cutoff time.Time) ([]model.Task, error) {
	out := []model.Task{}
	for _, t := range f.tasks {
		if !t.Deadline.After(cutoff) && !t.Reminded {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTaskStore) MarkReminded(ctx context.Context, taskID int) error {
	for i := range f.tasks {
		if f.tasks[i].ID == taskID {
			f.tasks[i].Reminded = true
			return nil
		}
	}
	return errors.New("task not found")
}

func (f *fakeTaskStore) UpdateStatus(ctx context.Context, taskID int, status string) error {
	for i := range f.tasks {
		if f.tasks[i].ID == taskID {
			f.tasks[i].Status = status
			return nil
		}
	}
	return errors.New("task not found")
}

func (f *fakeTaskStore) UpdatePriority(ctx context.Context, taskID int, p model.Priority) error {
	for i := range f.tasks {
		if f.tasks[i].ID == taskID {
			f.tasks[i].Priority = p
			return nil
		}
	}
	return errors.New("task not found")
}

type fakeEventStore struct {
	events []model.CalendarEvent
	nextID int
}

func (f *fakeEventStore) UpsertBatch(ctx context.Context, events []model.CalendarEvent) (int, error) {
	inserted := 0
	for _, ev := range events {
		dup := false
		for _, have := range f.events {
			if have.Title == ev.Title && have.StartTime.Equal(ev.StartTime) {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		f.nextID++
		ev.ID = f.nextID
		f.events = append(f.events, ev)
		inserted++
	}
	return inserted, nil
}

func (f *fakeEventStore) ListAll(ctx context.Context) ([]model.CalendarEvent, error) {
	return append([]model.CalendarEvent{}, f.events...), nil
}

func (f *fakeEventStore) ListStartBetween(ctx context.Context, start, end time.Time) ([]model.CalendarEvent, error) {
	out := []model.CalendarEvent{}
	for _, ev := range f.events {
		if !ev.StartTime.Before(start) && ev.StartTime.Before(end) {
			out = append(out, ev)
		}
	}
	return out, nil
}

type fakeEmailStore struct {
	emails []model.Email
}

func (f *fakeEmailStore) UpsertBatch(ctx context.Context, emails []model.Email) ([]int, error) {
	newIdx := []int{}
	for i, e := range emails {
		dup := false
		for _, have := range f.emails {
			if have.Subject == e.Subject && have.Sender == e.Sender && have.Snippet == e.Snippet {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		f.emails = append(f.emails, e)
		newIdx = append(newIdx, i)
	}
	return newIdx, nil
}

type fakeContactStore struct {
	contacts []model.Contact
}

func (f *fakeContactStore) UpsertBatch(ctx context.Context, contacts []model.Contact) (int, error) {
	inserted := 0
	for _, c := range contacts {
		dup := false
		for _, have := range f.contacts {
			if have.Email == c.Email {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		f.contacts = append(f.contacts, c)
		inserted++
	}
	return inserted, nil
}

type fakeReminderStore struct {
	reminders []model.Reminder
	notifs    []model.Notification
	nextID    int
}

func (f *fakeReminderStore) Insert(ctx context.Context, r *model.Reminder) (int, error) {
	f.nextID++
	r.ID = f.nextID
	f.reminders = append(f.reminders, *r)
	return r.ID, nil
}

func (f *fakeReminderStore) ListDue(ctx context.Context, now time.Time) ([]model.Reminder, error) {
	out := []model.Reminder{}
	for _, r := range f.reminders {
		if !r.RemindAt.After(now) && !r.IsSent {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReminderStore) CompleteSweep(ctx context.Context, notifs []model.Notification, reminderIDs []int) error {
	f.notifs = append(f.notifs, notifs...)
	for _, id := range reminderIDs {
		for i := range f.reminders {
			if f.reminders[i].ID == id {
				f.reminders[i].IsSent = true
			}
		}
	}
	return nil
}

type fakeNotificationStore struct {
	notifs []model.Notification
}

func (f *fakeNotificationStore) ListUnread(ctx context.Context, userID int) ([]model.Notification, error) {
	out := []model.Notification{}
	for _, n := range f.notifs {
		if n.UserID == userID && !n.IsRead {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotificationStore) MarkRead(ctx context.Context, notificationID int) error {
	for i := range f.notifs {
		if f.notifs[i].ID == notificationID {
			f.notifs[i].IsRead = true
			return nil
		}
	}
	return errors.New("notification not found")
}

type fakeDailyLogStore struct {
	logs []model.DailyLog
}

func (f *fakeDailyLogStore) Insert(ctx context.Context, l *model.DailyLog) (int, error) {
	f.logs = append(f.logs, *l)
	return len(f.logs), nil
}
