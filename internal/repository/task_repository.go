package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yukikurage/acme-dashboard/internal/models"
	"github.com/yukikurage/acme-dashboard/internal/utils"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB, log *zap.SugaredLogger) TaskRepository {
	return &GormTaskRepository{db: db, log: log}
}

// CreateTask inserts a task with status To Do and returns the generated ID.
// A nil assignee or due date is stored as NULL.
func (r *GormTaskRepository) CreateTask(ctx context.Context, recordID, name, description string, assignedTo *string, dueDate *time.Time) (string, error) {
	id := uuid.NewString()

	var dueDateArg interface{}
	if dueDate != nil {
		dueDateArg = utils.FormatTimestamp(*dueDate)
	}
	var assignedToArg interface{}
	if assignedTo != nil {
		assignedToArg = *assignedTo
	}

	err := r.db.WithContext(ctx).Exec(`
		INSERT INTO tasks (id, record_id, name, description, status, assigned_to, due_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`,
		id, recordID, name, description, string(models.TaskStatusTodo), assignedToArg, dueDateArg).Error
	if err != nil {
		return "", failure(r.log, "CreateTask", err, ErrCreateTask)
	}
	return id, nil
}

// FetchTasks lists a record's tasks, newest first
func (r *GormTaskRepository) FetchTasks(ctx context.Context, recordID string) ([]models.Task, error) {
	tasks := make([]models.Task, 0)
	err := r.db.WithContext(ctx).
		Where("record_id = ?", recordID).
		Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, failure(r.log, "FetchTasks", err, ErrFetchTasks)
	}
	return tasks, nil
}

// CreateComment inserts a comment and returns the generated ID
func (r *GormTaskRepository) CreateComment(ctx context.Context, taskID, userID, content string) (string, error) {
	id := uuid.NewString()
	err := r.db.WithContext(ctx).Exec(`
		INSERT INTO comments (id, task_id, user_id, content, created_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)`, id, taskID, userID, content).Error
	if err != nil {
		return "", failure(r.log, "CreateComment", err, ErrCreateComment)
	}
	return id, nil
}

// FetchComments lists a task's comments in the order they were written
func (r *GormTaskRepository) FetchComments(ctx context.Context, taskID string) ([]models.Comment, error) {
	comments := make([]models.Comment, 0)
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, failure(r.log, "FetchComments", err, ErrFetchComments)
	}
	return comments, nil
}
