package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"dayplanner/internal/model"
)

type NotificationRepository struct {
	db *pgxpool.Pool
}

func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) ListUnread(ctx context.Context, userID int) ([]model.Notification, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, user_id, message, created_at, is_read
        FROM notifications
        WHERE user_id = $1 AND is_read = FALSE
        ORDER BY created_at
    `, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifs := []model.Notification{}
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.CreatedAt, &n.IsRead); err != nil {
			return nil, err
		}
		notifs = append(notifs, n)
	}
	return notifs, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, notificationID int) error {
	_, err := r.db.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = $1`, notificationID)
	return err
}
