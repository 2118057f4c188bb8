package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"dayplanner/internal/model"
)

type DailyLogRepository struct {
	db *pgxpool.Pool
}

func NewDailyLogRepository(db *pgxpool.Pool) *DailyLogRepository {
	return &DailyLogRepository{db: db}
}

// Insert appends a summary row. There is deliberately no upsert-by-date:
// repeated runs for one date accumulate rows.
func (r *DailyLogRepository) Insert(ctx context.Context, l *model.DailyLog) (int, error) {
	var id int
	err := r.db.QueryRow(ctx, `
        INSERT INTO daily_logs (date, content)
        VALUES ($1, $2)
        RETURNING id
    `, l.Date, l.Content).Scan(&id)
	return id, err
}
