package model

import "time"

type Reminder struct {
	ID       int       `json:"id"`
	UserID   int       `json:"user_id"`
	Message  string    `json:"message"`
	RemindAt time.Time `json:"remind_at"`
	IsSent   bool      `json:"is_sent"`
}
