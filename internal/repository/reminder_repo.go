package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"dayplanner/internal/model"
)

type ReminderRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewReminderRepository(db *pgxpool.Pool, logger *zap.Logger) *ReminderRepository {
	return &ReminderRepository{db: db, logger: logger}
}

func (r *ReminderRepository) Insert(ctx context.Context, rem *model.Reminder) (int, error) {
	var id int
	err := r.db.QueryRow(ctx, `
        INSERT INTO reminders (user_id, message, remind_at, is_sent)
        VALUES ($1, $2, $3, FALSE)
        RETURNING id
    `, rem.UserID, rem.Message, rem.RemindAt).Scan(&id)
	if err != nil {
		r.logger.Error("Failed to insert reminder", zap.Error(err), zap.Int("user_id", rem.UserID))
		return 0, err
	}
	return id, nil
}

// ListDue returns reminders that have fired and were not yet sent. The
// is_sent guard keeps sweeps idempotent across ticks.
func (r *ReminderRepository) ListDue(ctx context.Context, now time.Time) ([]model.Reminder, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, user_id, message, remind_at, is_sent
        FROM reminders
        WHERE remind_at <= $1 AND is_sent = FALSE
    `, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reminders := []model.Reminder{}
	for rows.Next() {
		var rem model.Reminder
		if err := rows.Scan(&rem.ID, &rem.UserID, &rem.Message, &rem.RemindAt, &rem.IsSent); err != nil {
			return nil, err
		}
		reminders = append(reminders, rem)
	}
	return reminders, nil
}

// CompleteSweep writes the notifications and marks their reminders sent in a
// single transaction, so one tick commits as a unit.
func (r *ReminderRepository) CompleteSweep(ctx context.Context, notifs []model.Notification, reminderIDs []int) error {
	if len(reminderIDs) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, n := range notifs {
		if _, err := tx.Exec(ctx, `
            INSERT INTO notifications (user_id, message, is_read)
            VALUES ($1, $2, FALSE)
        `, n.UserID, n.Message); err != nil {
			r.logger.Error("Failed to insert notification", zap.Error(err), zap.Int("user_id", n.UserID))
			return err
		}
	}

	if _, err := tx.Exec(ctx, `
        UPDATE reminders SET is_sent = TRUE WHERE id = ANY($1)
    `, reminderIDs); err != nil {
		r.logger.Error("Failed to mark reminders sent", zap.Error(err))
		return err
	}

	return tx.Commit(ctx)
}
