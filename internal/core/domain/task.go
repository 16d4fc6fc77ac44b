package domain

import "time"

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// DependencyRef is the resolved target of a dependency edge.
type DependencyRef struct {
	ID     uint64
	Title  string
	Status TaskStatus
}

// Dependency is one edge of a task's dependency set. Dependency is nil when
// the target task has been deleted; the edge itself is kept, and a dangling
// edge still blocks completion.
type Dependency struct {
	ID           uint64
	DependencyID uint64
	Dependency   *DependencyRef
}

type Task struct {
	ID           uint64
	Title        string
	Description  *string
	Status       TaskStatus
	Priority     TaskPriority
	DueDate      time.Time
	Dependencies []Dependency
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Overdue is derived at read time against the service clock, never
	// persisted.
	Overdue bool
}

// IsOverdue reports whether the task's due date has passed while the task is
// not completed. A completed task is never overdue.
func (t Task) IsOverdue(now time.Time) bool {
	return t.Status != TaskStatusCompleted && t.DueDate.Before(now)
}

type CreateTaskInput struct {
	Title         string
	Description   *string
	Status        TaskStatus
	Priority      TaskPriority
	DueDate       time.Time
	DependencyIDs []uint64
}

type UpdateTaskInput struct {
	Title            *string
	Description      *string
	DescriptionSet   bool
	Status           *TaskStatus
	Priority         *TaskPriority
	DueDate          *time.Time
	DependencyIDs    []uint64
	DependencyIDsSet bool
}

type TaskFilter string

const (
	TaskFilterAll       TaskFilter = "all"
	TaskFilterCompleted TaskFilter = "completed"
	TaskFilterPending   TaskFilter = "pending"
	TaskFilterOverdue   TaskFilter = "overdue"
)

func (f TaskFilter) Valid() bool {
	switch f {
	case TaskFilterAll, TaskFilterCompleted, TaskFilterPending, TaskFilterOverdue:
		return true
	}
	return false
}

// Matches evaluates the filter against a task at the given instant. The
// pending filter covers everything not completed; overdue excludes tasks that
// were completed late.
func (f TaskFilter) Matches(task Task, now time.Time) bool {
	switch f {
	case TaskFilterCompleted:
		return task.Status == TaskStatusCompleted
	case TaskFilterPending:
		return task.Status != TaskStatusCompleted
	case TaskFilterOverdue:
		return task.IsOverdue(now)
	default:
		return true
	}
}
