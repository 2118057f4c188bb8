package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"dayplanner/internal/model"
)

type TaskRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTaskRepository(db *pgxpool.Pool, logger *zap.Logger) *TaskRepository {
	return &TaskRepository{db: db, logger: logger}
}

func (r *TaskRepository) Insert(ctx context.Context, t *model.Task) (int, error) {
	r.logger.Debug("Inserting task",
		zap.String("title", t.Title),
		zap.String("category", t.Category),
		zap.String("priority", t.Priority.String()),
	)
	query := `
        INSERT INTO tasks (title, description, deadline, estimated_time, importance_level, category, priority, status, reminded)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id
    `
	var id int
	err := r.db.QueryRow(ctx, query,
		t.Title,
		t.Description,
		t.Deadline,
		t.EstimatedTime,
		t.ImportanceLevel,
		t.Category,
		t.Priority.String(),
		t.Status,
		t.Reminded,
	).Scan(&id)
	if err != nil {
		r.logger.Error("Failed to insert task", zap.Error(err), zap.String("title", t.Title))
		return 0, err
	}
	return id, nil
}

// InsertBatch writes all tasks in one transaction, so a mid-batch failure
// leaves nothing behind.
func (r *TaskRepository) InsertBatch(ctx context.Context, tasks []model.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
        INSERT INTO tasks (title, description, deadline, estimated_time, importance_level, category, priority, status, reminded)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `
	for _, t := range tasks {
		if _, err := tx.Exec(ctx, query,
			t.Title,
			t.Description,
			t.Deadline,
			t.EstimatedTime,
			t.ImportanceLevel,
			t.Category,
			t.Priority.String(),
			t.Status,
			t.Reminded,
		); err != nil {
			r.logger.Error("Failed to insert task in batch", zap.Error(err), zap.String("title", t.Title))
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	r.logger.Info("Task batch inserted", zap.Int("count", len(tasks)))
	return nil
}

func (r *TaskRepository) ExistsByTitleAndDeadline(ctx context.Context, title string, deadline time.Time) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM tasks WHERE title = $1 AND deadline = $2)`,
		title, deadline,
	).Scan(&exists)
	return exists, err
}

func (r *TaskRepository) ListDeadlineBetween(ctx context.Context, start, end time.Time) ([]model.Task, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, title, description, deadline, estimated_time, importance_level, category, priority, status, reminded
        FROM tasks
        WHERE deadline >= $1 AND deadline < $2
        ORDER BY deadline
    `, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTasks(rows)
}

// ListDueSoonUnreminded returns tasks whose deadline falls at or before the
// cutoff and that have not been flagged yet.
func (r *TaskRepository) ListDueSoonUnreminded(ctx context.Context, cutoff time.Time) ([]model.Task, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, title, description, deadline, estimated_time, importance_level, category, priority, status, reminded
        FROM tasks
        WHERE deadline <= $1 AND reminded = FALSE
    `, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTasks(rows)
}

func (r *TaskRepository) MarkReminded(ctx context.Context, taskID int) error {
	_, err := r.db.Exec(ctx, `UPDATE tasks SET reminded = TRUE WHERE id = $1`, taskID)
	return err
}

func (r *TaskRepository) UpdateStatus(ctx context.Context, taskID int, status string) error {
	_, err := r.db.Exec(ctx, `UPDATE tasks SET status = $1 WHERE id = $2`, status, taskID)
	return err
}

func (r *TaskRepository) UpdatePriority(ctx context.Context, taskID int, p model.Priority) error {
	_, err := r.db.Exec(ctx, `UPDATE tasks SET priority = $1 WHERE id = $2`, p.String(), taskID)
	return err
}

type taskRows interface {
	Next() bool
	Scan(dest ...any) error
}

func scanTasks(rows taskRows) ([]model.Task, error) {
	tasks := []model.Task{}
	for rows.Next() {
		var (
			t        model.Task
			priority string
		)
		if err := rows.Scan(
			&t.ID,
			&t.Title,
			&t.Description,
			&t.Deadline,
			&t.EstimatedTime,
			&t.ImportanceLevel,
			&t.Category,
			&priority,
			&t.Status,
			&t.Reminded,
		); err != nil {
			return nil, err
		}
		// Legacy rows may carry either the label or the small-int form.
		p, err := model.ParsePriority(priority)
		if err != nil {
			p = model.PriorityMedium
		}
		t.Priority = p
		tasks = append(tasks, t)
	}
	return tasks, nil
}
