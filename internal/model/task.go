package model

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus is the closed set of task states.
type TaskStatus string

const (
	// StatusTodo is the initial state of every task.
	StatusTodo TaskStatus = "todo"
	// StatusInProgress marks a task being worked on.
	StatusInProgress TaskStatus = "in_progress"
	// StatusDone marks a finished task.
	StatusDone TaskStatus = "done"
)

// Valid reports whether s is a member of the closed status set.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	default:
		return false
	}
}

const (
	// TitleMaxLen is the maximum task title length.
	TitleMaxLen = 200
	// PriorityMin is the lowest task priority.
	PriorityMin = 1
	// PriorityMax is the highest task priority.
	PriorityMax = 5
	// PriorityDefault is used when the creator does not pick a priority.
	PriorityDefault = 3
)

// Task represents a unit of work owned by its creator and optionally
// assigned to another user.
type Task struct {
	ID          uuid.UUID  `json:"uuid" gorm:"type:char(36);primaryKey"`
	Title       string     `json:"title" gorm:"size:200;not null"`
	Description string     `json:"description" gorm:"type:text"`
	Status      TaskStatus `json:"status" gorm:"size:20;not null;default:'todo'"`
	Priority    int        `json:"priority" gorm:"not null;default:3"`
	DueDate     *time.Time `json:"due_date"`
	CreatedBy   uuid.UUID  `json:"created_by" gorm:"type:char(36);not null;index"`
	AssignedTo  *uuid.UUID `json:"assigned_to" gorm:"type:char(36);index"`
	CreatedAt   time.Time  `json:"created_at"`
}

// TaskCreate is the input schema for creating a task. Priority and status
// fall back to their defaults when omitted.
type TaskCreate struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status" validate:"omitempty,oneof=todo in_progress done"`
	Priority    *int       `json:"priority" validate:"omitempty,min=1,max=5"`
	DueDate     *time.Time `json:"due_date"`
	AssignedTo  *uuid.UUID `json:"assigned_to"`
}

// TaskUpdate is the partial-merge input schema for updating a task.
// Nil fields are left untouched.
type TaskUpdate struct {
	Title       *string     `json:"title" validate:"omitempty,max=200"`
	Description *string     `json:"description"`
	Status      *TaskStatus `json:"status" validate:"omitempty,oneof=todo in_progress done"`
	Priority    *int        `json:"priority" validate:"omitempty,min=1,max=5"`
	DueDate     *time.Time  `json:"due_date"`
	AssignedTo  *uuid.UUID  `json:"assigned_to"`
}

// TaskFilter holds the equality filters for task listing. Non-nil fields are
// combined with logical AND; a zero filter matches everything.
type TaskFilter struct {
	Status     *TaskStatus
	AssignedTo *uuid.UUID
	CreatedBy  *uuid.UUID
}
