package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskhub/internal/model"
	"taskhub/internal/pagination"
)

// TaskRepository defines task persistence operations.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Task, error)
	List(ctx context.Context, filter model.TaskFilter, params pagination.Params) ([]model.Task, int64, error)
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository builds a GORM-backed task repository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List returns one page of tasks matching all set filters (conjunction),
// ordered by creation time, plus the total matching row count.
func (r *taskRepository) List(ctx context.Context, filter model.TaskFilter, params pagination.Params) ([]model.Task, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Task{})
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.AssignedTo != nil {
		q = q.Where("assigned_to = ?", *filter.AssignedTo)
	}
	if filter.CreatedBy != nil {
		q = q.Where("created_by = ?", *filter.CreatedBy)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tasks []model.Task
	err := q.Order(orderClause(params.SortOrder)).
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

func (r *taskRepository) Update(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

// Delete removes a task and reports whether the row existed.
func (r *taskRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Task{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
