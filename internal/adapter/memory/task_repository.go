// Package memory backs the repository ports with mutex-guarded maps. It is
// the storage driver for single-process deployments and the store the service
// tests run against.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"taskdeck/internal/core/domain"
	"taskdeck/internal/core/ports"
)

type taskRecord struct {
	id          uint64
	title       string
	description *string
	status      domain.TaskStatus
	priority    domain.TaskPriority
	dueDate     time.Time
	createdAt   time.Time
	updatedAt   time.Time
	edges       []edgeRecord
}

type edgeRecord struct {
	id           uint64
	dependencyID uint64
}

type TaskRepository struct {
	mu         sync.RWMutex
	tasks      map[uint64]*taskRecord
	nextTaskID uint64
	nextEdgeID uint64
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository() *TaskRepository {
	return &TaskRepository{tasks: make(map[uint64]*taskRecord)}
}

func (r *TaskRepository) Create(_ context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	r.nextTaskID++
	record := &taskRecord{
		id:          r.nextTaskID,
		title:       input.Title,
		description: copyString(input.Description),
		status:      input.Status,
		priority:    input.Priority,
		dueDate:     input.DueDate,
		createdAt:   now,
		updatedAt:   now,
	}
	for _, depID := range input.DependencyIDs {
		r.nextEdgeID++
		record.edges = append(record.edges, edgeRecord{id: r.nextEdgeID, dependencyID: depID})
	}
	r.tasks[record.id] = record

	return r.snapshot(record), nil
}

func (r *TaskRepository) GetByID(_ context.Context, id uint64) (domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.tasks[id]
	if !ok {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	return r.snapshot(record), nil
}

func (r *TaskRepository) Update(_ context.Context, id uint64, input domain.UpdateTaskInput) (domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.tasks[id]
	if !ok {
		return domain.Task{}, domain.ErrTaskNotFound
	}

	if input.Title != nil {
		record.title = *input.Title
	}
	if input.DescriptionSet {
		record.description = copyString(input.Description)
	}
	if input.Status != nil {
		record.status = *input.Status
	}
	if input.Priority != nil {
		record.priority = *input.Priority
	}
	if input.DueDate != nil {
		record.dueDate = *input.DueDate
	}
	if input.DependencyIDsSet {
		record.edges = nil
		for _, depID := range input.DependencyIDs {
			r.nextEdgeID++
			record.edges = append(record.edges, edgeRecord{id: r.nextEdgeID, dependencyID: depID})
		}
	}
	record.updatedAt = time.Now()

	return r.snapshot(record), nil
}

// Delete removes the task and its outgoing edges. Edges other tasks hold
// toward the deleted id are kept and resolve to nil from then on.
func (r *TaskRepository) Delete(_ context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *TaskRepository) List(_ context.Context) ([]domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := make([]domain.Task, 0, len(r.tasks))
	for _, record := range r.tasks {
		tasks = append(tasks, r.snapshot(record))
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })

	return tasks, nil
}

func (r *TaskRepository) Exists(_ context.Context, ids []uint64) ([]uint64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var missing []uint64
	for _, id := range ids {
		if _, ok := r.tasks[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

func (r *TaskRepository) DependencyEdges(_ context.Context, taskIDs []uint64) (map[uint64][]uint64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	edges := make(map[uint64][]uint64, len(taskIDs))
	for _, id := range taskIDs {
		record, ok := r.tasks[id]
		if !ok {
			continue
		}
		for _, edge := range record.edges {
			edges[id] = append(edges[id], edge.dependencyID)
		}
	}
	return edges, nil
}

// title resolves a task title for the history listing; ok is false when the
// task no longer exists.
func (r *TaskRepository) title(id uint64) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.tasks[id]
	if !ok {
		return "", false
	}
	return record.title, true
}

func (r *TaskRepository) snapshot(record *taskRecord) domain.Task {
	task := domain.Task{
		ID:          record.id,
		Title:       record.title,
		Description: copyString(record.description),
		Status:      record.status,
		Priority:    record.priority,
		DueDate:     record.dueDate,
		CreatedAt:   record.createdAt,
		UpdatedAt:   record.updatedAt,
	}

	for _, edge := range record.edges {
		dep := domain.Dependency{ID: edge.id, DependencyID: edge.dependencyID}
		if target, ok := r.tasks[edge.dependencyID]; ok {
			dep.Dependency = &domain.DependencyRef{
				ID:     target.id,
				Title:  target.title,
				Status: target.status,
			}
		}
		task.Dependencies = append(task.Dependencies, dep)
	}

	return task
}

func copyString(value *string) *string {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}
