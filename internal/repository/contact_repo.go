package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"dayplanner/internal/model"
)

type ContactRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewContactRepository(db *pgxpool.Pool, logger *zap.Logger) *ContactRepository {
	return &ContactRepository{db: db, logger: logger}
}

// UpsertBatch stores contacts in one transaction, skipping duplicates by
// email address. Returns how many were inserted.
func (r *ContactRepository) UpsertBatch(ctx context.Context, contacts []model.Contact) (int, error) {
	if len(contacts) == 0 {
		return 0, nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	inserted := 0
	query := `
        INSERT INTO contacts (name, email, phone)
        VALUES ($1, $2, $3)
        ON CONFLICT (email) DO NOTHING
    `
	for _, c := range contacts {
		tag, err := tx.Exec(ctx, query, c.Name, c.Email, c.Phone)
		if err != nil {
			r.logger.Error("Failed to upsert contact", zap.Error(err), zap.String("email", c.Email))
			return 0, err
		}
		inserted += int(tag.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return inserted, nil
}
