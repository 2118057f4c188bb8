package model

import "time"

// Email is unique per (Subject, Sender, Snippet).
type Email struct {
	ID           int       `json:"id"`
	Sender       string    `json:"sender"`
	Subject      string    `json:"subject"`
	Snippet      string    `json:"snippet"`
	DateReceived time.Time `json:"date_received"`
}
