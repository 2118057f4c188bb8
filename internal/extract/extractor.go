package extract

import (
	"errors"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"

	"dayplanner/internal/clock"
	"dayplanner/internal/model"
)

// Keywords that mark an email as actionable. Matching is case-insensitive
// against subject + body.
var taskKeywords = []string{
	"submit", "attend", "complete", "pay", "join", "upload",
	"deadline", "reminder", "exam", "meeting", "assignment", "task",
}

var (
	// ErrNoTaskFound means the email contained no task keyword. Not a
	// failure; the caller just skips the message.
	ErrNoTaskFound = errors.New("no task keyword found in email")

	// ErrNoDueTime means a keyword matched but no due date could be
	// resolved from the text. Email-derived tasks require one.
	ErrNoDueTime = errors.New("no due time found in email")
)

// DateResolver finds a due date in free text. The production implementation
// parses natural language with future-preferring rules; tests use fixed fakes.
type DateResolver interface {
	Resolve(text string, base time.Time) (time.Time, bool)
}

// Candidate is a task descriptor before classification and persistence.
type Candidate struct {
	Title           string
	Description     string
	Deadline        time.Time
	EstimatedTime   float64
	ImportanceLevel int
	Category        string
	Status          string
}

type Extractor struct {
	resolver DateResolver
	clock    clock.Clock
	logger   *zap.Logger
}

func New(resolver DateResolver, clk clock.Clock, logger *zap.Logger) *Extractor {
	return &Extractor{resolver: resolver, clock: clk, logger: logger}
}

// FromEvent derives a task candidate from a calendar event: the event title
// becomes the task title and the start time its deadline, with neutral effort
// and importance.
func (e *Extractor) FromEvent(ev model.CalendarEvent) Candidate {
	return Candidate{
		Title:           ev.Title,
		Description:     ev.Description,
		Deadline:        ev.StartTime,
		EstimatedTime:   model.DefaultEstimatedTime,
		ImportanceLevel: model.DefaultImportanceLevel,
		Category:        "Calendar",
		Status:          "Pending",
	}
}

// FromEmail scans subject + body for a task keyword and a natural-language
// due date. The task title is the first sentence containing the keyword,
// falling back to the subject.
func (e *Extractor) FromEmail(subject, body string) (Candidate, error) {
	fullText := subject + " " + body
	lower := strings.ToLower(fullText)

	keyword := ""
	for _, kw := range taskKeywords {
		if strings.Contains(lower, kw) {
			keyword = kw
			break
		}
	}
	if keyword == "" {
		e.logger.Debug("No task keyword found in email", zap.String("subject", subject))
		return Candidate{}, ErrNoTaskFound
	}

	dueTime, ok := e.resolver.Resolve(fullText, e.clock.Now())
	if !ok {
		e.logger.Warn("Email matched a task keyword but no due time",
			zap.String("subject", subject),
			zap.String("keyword", keyword),
		)
		return Candidate{}, ErrNoDueTime
	}

	title := subject
	for _, sentence := range splitSentences(fullText) {
		if strings.Contains(strings.ToLower(sentence), keyword) {
			title = sentence
			break
		}
	}

	return Candidate{
		Title:           capitalize(strings.TrimSpace(title)),
		Description:     body,
		Deadline:        dueTime,
		EstimatedTime:   model.DefaultEstimatedTime,
		ImportanceLevel: model.DefaultImportanceLevel,
		Category:        "Email",
		Status:          model.StatusPending,
	}, nil
}

func splitSentences(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == '.' || r == '?' || r == '!'
	})
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
