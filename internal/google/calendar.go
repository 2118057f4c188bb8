package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
	"go.uber.org/zap"

	"dayplanner/internal/model"
	"dayplanner/pkg/circuitbreaker"
	"dayplanner/pkg/config"
	"dayplanner/pkg/metrics"
)

const allDayLayout = "2006-01-02"

// CalendarClient reads upcoming events from a single Google calendar.
type CalendarClient struct {
	srv        *calendar.Service
	calendarID string
	maxResults int64
	breaker    *circuitbreaker.CircuitBreaker
	logger     *zap.Logger
}

func NewCalendarClient(ctx context.Context, client *http.Client, cfg config.GoogleConfig, logger *zap.Logger) (*CalendarClient, error) {
	srv, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}

	calendarID := cfg.CalendarID
	if calendarID == "" {
		calendarID = "primary"
	}
	maxResults := int64(cfg.MaxResults)
	if maxResults <= 0 {
		maxResults = 50
	}

	return &CalendarClient{
		srv:        srv,
		calendarID: calendarID,
		maxResults: maxResults,
		breaker:    circuitbreaker.NewCircuitBreaker(circuitbreaker.DefaultConfig()),
		logger:     logger,
	}, nil
}

// Events lists upcoming events ordered by start time. All-day events carry a
// date instead of a timestamp and resolve to midnight UTC. Events without a
// usable start time are skipped.
func (c *CalendarClient) Events(ctx context.Context) ([]model.CalendarEvent, error) {
	start := time.Now()
	var out []model.CalendarEvent

	err := c.breaker.Execute(func() error {
		res, err := c.srv.Events.List(c.calendarID).
			TimeMin(time.Now().UTC().Format(time.RFC3339)).
			MaxResults(c.maxResults).
			SingleEvents(true).
			OrderBy("startTime").
			Context(ctx).
			Do()
		if err != nil {
			return fmt.Errorf("list calendar events: %w", err)
		}

		for _, item := range res.Items {
			startTime, err := parseEventTime(item.Start)
			if err != nil {
				c.logger.Warn("Skipping event without usable start time",
					zap.String("event_id", item.Id), zap.Error(err))
				continue
			}
			endTime, err := parseEventTime(item.End)
			if err != nil {
				endTime = startTime
			}

			title := item.Summary
			if title == "" {
				title = "No Title"
			}

			out = append(out, model.CalendarEvent{
				Title:       title,
				Description: item.Description,
				StartTime:   startTime,
				EndTime:     endTime,
			})
		}
		return nil
	})

	metrics.ProviderFetchDuration.WithLabelValues("calendar").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}
	return out, nil
}

func parseEventTime(t *calendar.EventDateTime) (time.Time, error) {
	if t == nil {
		return time.Time{}, errors.New("missing event time")
	}
	if t.DateTime != "" {
		return time.Parse(time.RFC3339, t.DateTime)
	}
	return time.Parse(allDayLayout, t.Date)
}
