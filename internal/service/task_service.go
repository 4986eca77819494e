package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"taskhub/internal/errors"
	"taskhub/internal/model"
	"taskhub/internal/pagination"
	"taskhub/internal/repository"
)

// TaskService exposes task domain operations.
type TaskService interface {
	Create(ctx context.Context, input model.TaskCreate, creator *model.User) (*model.Task, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error)
	List(ctx context.Context, filter model.TaskFilter, params pagination.Params) (pagination.Page[model.Task], error)
	Update(ctx context.Context, id uuid.UUID, input model.TaskUpdate) (*model.Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type taskService struct {
	repo     repository.TaskRepository
	userRepo repository.UserRepository
	logger   zerolog.Logger
}

// NewTaskService builds a TaskService. The user repository backs the eager
// assignee-existence lookups.
func NewTaskService(repo repository.TaskRepository, userRepo repository.UserRepository, logger zerolog.Logger) TaskService {
	return &taskService{repo: repo, userRepo: userRepo, logger: logger}
}

// validateTitle and validatePriority run inside the service so a
// programmatic call that bypassed request validation is still rejected.
func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return errors.NewValidation("title must not be empty", "title")
	}
	// character count, matching the request schema's max=200 tag
	if utf8.RuneCountInString(title) > model.TitleMaxLen {
		return errors.NewValidation(fmt.Sprintf("title must be at most %d characters", model.TitleMaxLen), "title")
	}
	return nil
}

func validatePriority(priority int) error {
	if priority < model.PriorityMin || priority > model.PriorityMax {
		return errors.NewValidation(
			fmt.Sprintf("priority must be between %d and %d", model.PriorityMin, model.PriorityMax), "priority")
	}
	return nil
}

// assigneeExists issues an explicit lookup; assignment to a missing user is
// a Validation failure, not NotFound, since the task itself is the subject.
func (s *taskService) assigneeExists(ctx context.Context, id uuid.UUID) error {
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.NewValidation("assigned user does not exist", "assigned_to")
		}
		return err
	}
	return nil
}

// Create validates input, applies defaults, and persists a new task owned by
// the creator.
func (s *taskService) Create(ctx context.Context, input model.TaskCreate, creator *model.User) (*model.Task, error) {
	if err := validateTitle(input.Title); err != nil {
		return nil, err
	}

	priority := model.PriorityDefault
	if input.Priority != nil {
		priority = *input.Priority
	}
	if err := validatePriority(priority); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = model.StatusTodo
	}
	if !status.Valid() {
		return nil, errors.NewValidation("status must be todo, in_progress or done", "status")
	}

	if input.AssignedTo != nil {
		if err := s.assigneeExists(ctx, *input.AssignedTo); err != nil {
			return nil, err
		}
	}

	task := &model.Task{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     input.DueDate,
		CreatedBy:   creator.ID,
		AssignedTo:  input.AssignedTo,
	}
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("task_id", task.ID.String()).
		Str("created_by", creator.ID.String()).
		Msg("created task")
	return task, nil
}

func (s *taskService) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFound("Task", id.String())
		}
		return nil, err
	}
	return task, nil
}

// List returns one page of tasks matching every set filter (logical AND).
// An empty filter returns the full collection; who-may-see-what scoping is
// the gate's concern, applied before this call.
func (s *taskService) List(ctx context.Context, filter model.TaskFilter, params pagination.Params) (pagination.Page[model.Task], error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return pagination.Page[model.Task]{}, errors.NewValidation("status must be todo, in_progress or done", "status")
	}

	tasks, total, err := s.repo.List(ctx, filter, params)
	if err != nil {
		return pagination.Page[model.Task]{}, err
	}
	return pagination.NewPage(tasks, total, params), nil
}

// Update applies a partial merge: nil input fields are left untouched.
// Merged values are re-validated so invariants hold regardless of caller.
func (s *taskService) Update(ctx context.Context, id uuid.UUID, input model.TaskUpdate) (*model.Task, error) {
	task, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if err := validateTitle(*input.Title); err != nil {
			return nil, err
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, errors.NewValidation("status must be todo, in_progress or done", "status")
		}
		task.Status = *input.Status
	}
	if input.Priority != nil {
		if err := validatePriority(*input.Priority); err != nil {
			return nil, err
		}
		task.Priority = *input.Priority
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.AssignedTo != nil {
		if err := s.assigneeExists(ctx, *input.AssignedTo); err != nil {
			return nil, err
		}
		task.AssignedTo = input.AssignedTo
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Info().Str("task_id", task.ID.String()).Msg("updated task")
	return task, nil
}

// Delete removes a task permanently; deleting an absent task fails NotFound.
func (s *taskService) Delete(ctx context.Context, id uuid.UUID) error {
	existed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !existed {
		return errors.NewNotFound("Task", id.String())
	}

	s.logger.Info().Str("task_id", id.String()).Msg("deleted task")
	return nil
}
