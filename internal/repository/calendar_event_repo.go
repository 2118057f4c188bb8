package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"dayplanner/internal/model"
)

type CalendarEventRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewCalendarEventRepository(db *pgxpool.Pool, logger *zap.Logger) *CalendarEventRepository {
	return &CalendarEventRepository{db: db, logger: logger}
}

// UpsertBatch stores events in one transaction, skipping any that already
// exist per (title, start_time). Returns how many were actually inserted.
func (r *CalendarEventRepository) UpsertBatch(ctx context.Context, events []model.CalendarEvent) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	inserted := 0
	query := `
        INSERT INTO calendar_events (title, description, start_time, end_time)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (title, start_time) DO NOTHING
    `
	for _, ev := range events {
		tag, err := tx.Exec(ctx, query, ev.Title, ev.Description, ev.StartTime, ev.EndTime)
		if err != nil {
			r.logger.Error("Failed to upsert calendar event", zap.Error(err), zap.String("title", ev.Title))
			return 0, err
		}
		inserted += int(tag.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return inserted, nil
}

func (r *CalendarEventRepository) ListAll(ctx context.Context) ([]model.CalendarEvent, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, title, description, start_time, end_time, created_at
        FROM calendar_events
        ORDER BY start_time
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

func (r *CalendarEventRepository) ListStartBetween(ctx context.Context, start, end time.Time) ([]model.CalendarEvent, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, title, description, start_time, end_time, created_at
        FROM calendar_events
        WHERE start_time >= $1 AND start_time < $2
        ORDER BY start_time
    `, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

func scanEvents(rows taskRows) ([]model.CalendarEvent, error) {
	events := []model.CalendarEvent{}
	for rows.Next() {
		var ev model.CalendarEvent
		if err := rows.Scan(
			&ev.ID,
			&ev.Title,
			&ev.Description,
			&ev.StartTime,
			&ev.EndTime,
			&ev.CreatedAt,
		); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}
