package ports

import (
	"context"
	"time"

	"taskdeck/internal/core/domain"
)

// Clock supplies the current time for overdue derivation and history
// timestamps. Production uses time.Now; tests pin it.
type Clock func() time.Time

type TaskRepository interface {
	Create(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error)
	GetByID(ctx context.Context, id uint64) (domain.Task, error)
	Update(ctx context.Context, id uint64, input domain.UpdateTaskInput) (domain.Task, error)
	Delete(ctx context.Context, id uint64) error
	List(ctx context.Context) ([]domain.Task, error)
	// Exists reports which of the given task ids are absent from the store.
	Exists(ctx context.Context, ids []uint64) (missing []uint64, err error)
	// DependencyEdges returns the stored outgoing dependency edges for the
	// given task ids, feeding the cycle reachability walk.
	DependencyEdges(ctx context.Context, taskIDs []uint64) (map[uint64][]uint64, error)
}

type TaskService interface {
	CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error)
	GetTask(ctx context.Context, id uint64) (domain.Task, error)
	UpdateTask(ctx context.Context, id uint64, input domain.UpdateTaskInput) (domain.Task, error)
	DeleteTask(ctx context.Context, id uint64) error
	ListTasks(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error)
}
