package model

import "time"

// CalendarEvent is unique per (Title, StartTime); re-ingesting the same event
// is a no-op.
type CalendarEvent struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	CreatedAt   time.Time `json:"created_at"`
}
