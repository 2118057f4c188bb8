package model

import "time"

// DailyLog is one productivity summary row. Repeated analysis runs for the
// same date append new rows rather than overwriting.
type DailyLog struct {
	ID      int       `json:"id"`
	Date    time.Time `json:"date"`
	Content string    `json:"content"`
}
