package model

import "time"

const (
	StatusPending = "pending"

	DefaultEstimatedTime   = 1
	DefaultImportanceLevel = 3
)

type Task struct {
	ID              int       `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Deadline        time.Time `json:"deadline"`
	EstimatedTime   float64   `json:"estimated_time"`
	ImportanceLevel int       `json:"importance_level"`
	Category        string    `json:"category"`
	Priority        Priority  `json:"priority"`
	Status          string    `json:"status"`
	Reminded        bool      `json:"reminded"`
}
