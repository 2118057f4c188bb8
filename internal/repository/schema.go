package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is created on startup. The unique indexes back the ingestion
// invariants: an event may not repeat per (title, start_time), an email per
// (subject, sender, snippet), a contact per email address.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS tasks (
		id SERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT,
		deadline TIMESTAMPTZ,
		estimated_time DOUBLE PRECISION DEFAULT 1,
		importance_level INT DEFAULT 3,
		category TEXT,
		priority TEXT,
		status TEXT DEFAULT 'pending',
		reminded BOOLEAN DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS calendar_events (
		id SERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT,
		start_time TIMESTAMPTZ NOT NULL,
		end_time TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ DEFAULT NOW(),
		UNIQUE (title, start_time)
	)`,
	`CREATE TABLE IF NOT EXISTS emails (
		id SERIAL PRIMARY KEY,
		sender TEXT NOT NULL,
		subject TEXT,
		snippet TEXT,
		date_received TIMESTAMPTZ DEFAULT NOW(),
		UNIQUE (subject, sender, snippet)
	)`,
	`CREATE TABLE IF NOT EXISTS contacts (
		id SERIAL PRIMARY KEY,
		name TEXT,
		email TEXT UNIQUE,
		phone TEXT,
		created_at TIMESTAMPTZ DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS reminders (
		id SERIAL PRIMARY KEY,
		user_id INT NOT NULL,
		message TEXT NOT NULL,
		remind_at TIMESTAMPTZ NOT NULL,
		is_sent BOOLEAN DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id SERIAL PRIMARY KEY,
		user_id INT NOT NULL,
		message TEXT NOT NULL,
		created_at TIMESTAMPTZ DEFAULT NOW(),
		is_read BOOLEAN DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS daily_logs (
		id SERIAL PRIMARY KEY,
		date DATE NOT NULL,
		content TEXT NOT NULL
	)`,
}

func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
