package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"dayplanner/internal/classifier"
	"dayplanner/internal/model"
	"dayplanner/pkg/metrics"
)

// TaskService is the direct task-creation path, for tasks not derived from
// calendar events or emails.
type TaskService struct {
	tasks      TaskStore
	classifier *classifier.Classifier
	logger     *zap.Logger
}

func NewTaskService(tasks TaskStore, cls *classifier.Classifier, logger *zap.Logger) *TaskService {
	return &TaskService{tasks: tasks, classifier: cls, logger: logger}
}

type CreateTaskInput struct {
	Title           string
	Description     string
	Deadline        string // classifier.DeadlineLayout
	EstimatedTime   float64
	ImportanceLevel int
	Category        string
}

func (s *TaskService) Create(ctx context.Context, in CreateTaskInput) (*model.Task, error) {
	// Priority first: a bad deadline string degrades the prediction to Low
	// rather than erroring, but the stored deadline itself must parse.
	priority := s.classifier.Predict(in.Deadline, in.EstimatedTime, in.ImportanceLevel)

	deadline, err := time.Parse(classifier.DeadlineLayout, in.Deadline)
	if err != nil {
		return nil, fmt.Errorf("parse deadline %q: %w", in.Deadline, err)
	}

	estimated := in.EstimatedTime
	if estimated == 0 {
		estimated = model.DefaultEstimatedTime
	}
	importance := in.ImportanceLevel
	if importance == 0 {
		importance = model.DefaultImportanceLevel
	}
	category := in.Category
	if category == "" {
		category = "General"
	}

	task := &model.Task{
		Title:           in.Title,
		Description:     in.Description,
		Deadline:        deadline,
		EstimatedTime:   estimated,
		ImportanceLevel: importance,
		Category:        category,
		Priority:        priority,
		Status:          model.StatusPending,
	}

	id, err := s.tasks.Insert(ctx, task)
	if err != nil {
		return nil, err
	}
	task.ID = id

	metrics.TasksCreated.WithLabelValues("direct").Inc()
	s.logger.Info("Task created",
		zap.Int("task_id", id),
		zap.String("title", task.Title),
		zap.String("priority", priority.String()),
	)
	return task, nil
}

func (s *TaskService) UpdateStatus(ctx context.Context, taskID int, status string) error {
	return s.tasks.UpdateStatus(ctx, taskID, status)
}

func (s *TaskService) UpdatePriority(ctx context.Context, taskID int, p model.Priority) error {
	return s.tasks.UpdatePriority(ctx, taskID, p)
}
