package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"dayplanner/internal/classifier"
	"dayplanner/internal/clock"
	"dayplanner/internal/extract"
	"dayplanner/internal/model"
	"dayplanner/pkg/metrics"
)

// IncomingEmail is the provider-side shape of a fetched message.
type IncomingEmail struct {
	MessageID string
	Subject   string
	Sender    string
	Snippet   string
}

// Providers are the external collaborators. A fetch error aborts the current
// tick only; the next scheduled run retries.

type CalendarProvider interface {
	Events(ctx context.Context) ([]model.CalendarEvent, error)
}

type EmailProvider interface {
	Messages(ctx context.Context) ([]IncomingEmail, error)
}

type ContactsProvider interface {
	Contacts(ctx context.Context) ([]model.Contact, error)
}

// Ingestor pulls from the providers and batch-upserts what they return.
// Newly stored emails run through the task extractor.
type Ingestor struct {
	calendar CalendarProvider
	email    EmailProvider
	contacts ContactsProvider

	events       EventStore
	emails       EmailStore
	contactStore ContactStore
	tasks        TaskStore

	extractor  *extract.Extractor
	classifier *classifier.Classifier
	clock      clock.Clock
	logger     *zap.Logger
}

func NewIngestor(
	calendar CalendarProvider,
	email EmailProvider,
	contacts ContactsProvider,
	events EventStore,
	emails EmailStore,
	contactStore ContactStore,
	tasks TaskStore,
	extractor *extract.Extractor,
	cls *classifier.Classifier,
	clk clock.Clock,
	logger *zap.Logger,
) *Ingestor {
	return &Ingestor{
		calendar:     calendar,
		email:        email,
		contacts:     contacts,
		events:       events,
		emails:       emails,
		contactStore: contactStore,
		tasks:        tasks,
		extractor:    extractor,
		classifier:   cls,
		clock:        clk,
		logger:       logger,
	}
}

// Run performs one ingest tick across all three providers. Failures in one
// source do not block the others.
func (s *Ingestor) Run(ctx context.Context) error {
	return errors.Join(
		s.SyncCalendar(ctx),
		s.SyncEmails(ctx),
		s.SyncContacts(ctx),
	)
}

func (s *Ingestor) SyncCalendar(ctx context.Context) error {
	events, err := s.calendar.Events(ctx)
	if err != nil {
		return fmt.Errorf("fetch calendar events: %w", err)
	}

	inserted, err := s.events.UpsertBatch(ctx, events)
	if err != nil {
		return fmt.Errorf("store calendar events: %w", err)
	}

	metrics.RecordsIngested.WithLabelValues("calendar_event").Add(float64(inserted))
	s.logger.Info("Calendar sync completed",
		zap.Int("fetched", len(events)),
		zap.Int("new", inserted),
	)
	return nil
}

func (s *Ingestor) SyncEmails(ctx context.Context) error {
	msgs, err := s.email.Messages(ctx)
	if err != nil {
		return fmt.Errorf("fetch emails: %w", err)
	}

	now := s.clock.Now()
	emails := make([]model.Email, len(msgs))
	for i, m := range msgs {
		emails[i] = model.Email{
			Sender:       m.Sender,
			Subject:      m.Subject,
			Snippet:      m.Snippet,
			DateReceived: now,
		}
	}

	newIdx, err := s.emails.UpsertBatch(ctx, emails)
	if err != nil {
		return fmt.Errorf("store emails: %w", err)
	}
	metrics.RecordsIngested.WithLabelValues("email").Add(float64(len(newIdx)))

	for _, i := range newIdx {
		s.extractTask(ctx, msgs[i])
	}

	s.logger.Info("Email sync completed",
		zap.Int("fetched", len(msgs)),
		zap.Int("new", len(newIdx)),
	)
	return nil
}

// extractTask tries to derive a task from one new email. Emails without a
// task keyword or a resolvable due time are skipped, not failed.
func (s *Ingestor) extractTask(ctx context.Context, m IncomingEmail) {
	cand, err := s.extractor.FromEmail(m.Subject, m.Snippet)
	if errors.Is(err, extract.ErrNoTaskFound) || errors.Is(err, extract.ErrNoDueTime) {
		return
	}
	if err != nil {
		s.logger.Warn("Email task extraction failed", zap.Error(err), zap.String("subject", m.Subject))
		return
	}

	priority := s.classifier.PredictAt(cand.Deadline, cand.EstimatedTime, cand.ImportanceLevel)
	task := taskFromCandidate(cand, priority)

	if _, err := s.tasks.Insert(ctx, &task); err != nil {
		s.logger.Error("Failed to persist email-derived task", zap.Error(err), zap.String("title", task.Title))
		return
	}

	metrics.TasksCreated.WithLabelValues("email").Inc()
	s.logger.Info("Task created from email",
		zap.String("title", task.Title),
		zap.Time("deadline", task.Deadline),
		zap.String("priority", task.Priority.String()),
	)
}

func (s *Ingestor) SyncContacts(ctx context.Context) error {
	contacts, err := s.contacts.Contacts(ctx)
	if err != nil {
		return fmt.Errorf("fetch contacts: %w", err)
	}

	inserted, err := s.contactStore.UpsertBatch(ctx, contacts)
	if err != nil {
		return fmt.Errorf("store contacts: %w", err)
	}

	metrics.RecordsIngested.WithLabelValues("contact").Add(float64(inserted))
	s.logger.Info("Contacts sync completed",
		zap.Int("fetched", len(contacts)),
		zap.Int("new", inserted),
	)
	return nil
}
