package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"dayplanner/internal/model"
)

type EmailRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewEmailRepository(db *pgxpool.Pool, logger *zap.Logger) *EmailRepository {
	return &EmailRepository{db: db, logger: logger}
}

// UpsertBatch stores emails in one transaction, skipping duplicates per
// (subject, sender, snippet). Returns the indices of emails that were new.
func (r *EmailRepository) UpsertBatch(ctx context.Context, emails []model.Email) ([]int, error) {
	if len(emails) == 0 {
		return nil, nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	query := `
        INSERT INTO emails (sender, subject, snippet, date_received)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (subject, sender, snippet) DO NOTHING
        RETURNING id
    `
	newIdx := []int{}
	for i, e := range emails {
		var id int
		err := tx.QueryRow(ctx, query, e.Sender, e.Subject, e.Snippet, e.DateReceived).Scan(&id)
		if err == pgx.ErrNoRows {
			continue // duplicate, silently skipped
		}
		if err != nil {
			r.logger.Error("Failed to upsert email", zap.Error(err), zap.String("subject", e.Subject))
			return nil, err
		}
		newIdx = append(newIdx, i)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return newIdx, nil
}
