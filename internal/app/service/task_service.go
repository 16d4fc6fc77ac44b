package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"taskdeck/internal/core/depgraph"
	"taskdeck/internal/core/domain"
	"taskdeck/internal/core/ports"
)

type TaskService struct {
	taskRepository    ports.TaskRepository
	historyRepository ports.HistoryRepository
	clock             ports.Clock
	locks             *taskLocks
}

func NewTaskService(taskRepository ports.TaskRepository, historyRepository ports.HistoryRepository, clock ports.Clock) *TaskService {
	if clock == nil {
		clock = time.Now
	}
	return &TaskService{
		taskRepository:    taskRepository,
		historyRepository: historyRepository,
		clock:             clock,
		locks:             newTaskLocks(),
	}
}

func (s *TaskService) CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	input.Title = strings.TrimSpace(input.Title)
	if err := validateCreateInput(input); err != nil {
		return domain.Task{}, err
	}

	input.DependencyIDs = dedupeIDs(input.DependencyIDs)
	if err := s.checkDependenciesExist(ctx, input.DependencyIDs); err != nil {
		return domain.Task{}, err
	}

	// Creation is never gated on dependency completion and never produces
	// a history entry; history starts at the first change.
	task, err := s.taskRepository.Create(ctx, input)
	if err != nil {
		return domain.Task{}, err
	}

	task.Overdue = task.IsOverdue(s.clock())
	return task, nil
}

func (s *TaskService) GetTask(ctx context.Context, id uint64) (domain.Task, error) {
	task, err := s.taskRepository.GetByID(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}

	task.Overdue = task.IsOverdue(s.clock())
	return task, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, id uint64, input domain.UpdateTaskInput) (domain.Task, error) {
	// The dependency check and the status write it gates must not be split
	// by a concurrent mutation of the same task.
	s.locks.lock(id)
	defer s.locks.unlock(id)

	current, err := s.taskRepository.GetByID(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}

	if err := validateUpdateInput(input); err != nil {
		return domain.Task{}, err
	}

	if input.DependencyIDsSet {
		input.DependencyIDs = dedupeIDs(input.DependencyIDs)
		if err := s.validateDependencySet(ctx, id, input.DependencyIDs); err != nil {
			return domain.Task{}, err
		}
	}

	if input.Status != nil && *input.Status == domain.TaskStatusCompleted && current.Status != domain.TaskStatusCompleted {
		dependencies := current.Dependencies
		if input.DependencyIDsSet {
			// Gate on the dependency set this update installs, not
			// the one it replaces.
			dependencies, err = s.resolveDependencies(ctx, input.DependencyIDs)
			if err != nil {
				return domain.Task{}, err
			}
		}
		if blocking := depgraph.Blocking(dependencies); len(blocking) > 0 {
			return domain.Task{}, &domain.DependencyBlockedError{TaskID: id, BlockingIDs: blocking}
		}
	}

	updated, err := s.taskRepository.Update(ctx, id, input)
	if err != nil {
		return domain.Task{}, err
	}

	if updated.Status != current.Status || updated.Priority != current.Priority {
		_, err = s.historyRepository.Append(ctx, domain.HistoryLogEntry{
			TaskID:       id,
			Date:         s.clock(),
			PrevStatus:   current.Status,
			Status:       updated.Status,
			PrevPriority: current.Priority,
			Priority:     updated.Priority,
		})
		if err != nil {
			return domain.Task{}, err
		}
	}

	updated.Overdue = updated.IsOverdue(s.clock())
	return updated, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id uint64) error {
	s.locks.lock(id)
	defer s.locks.unlock(id)

	// History entries referencing the task are kept, and so are dependency
	// edges pointing at it: dangling edges surface as unresolved and keep
	// blocking completion of their owners.
	return s.taskRepository.Delete(ctx, id)
}

func (s *TaskService) ListTasks(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	if filter == "" {
		filter = domain.TaskFilterAll
	}
	if !filter.Valid() {
		return nil, domain.NewValidationError("filter", domain.ErrInvalidTaskPayload)
	}

	tasks, err := s.taskRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	filtered := make([]domain.Task, 0, len(tasks))
	for _, task := range tasks {
		task.Overdue = task.IsOverdue(now)
		if filter.Matches(task, now) {
			filtered = append(filtered, task)
		}
	}

	return filtered, nil
}

func (s *TaskService) validateDependencySet(ctx context.Context, taskID uint64, dependencyIDs []uint64) error {
	for _, depID := range dependencyIDs {
		if depID == taskID {
			return domain.NewValidationError("dependencyIds", domain.ErrSelfDependency)
		}
	}

	if err := s.checkDependenciesExist(ctx, dependencyIDs); err != nil {
		return err
	}

	cycles, err := depgraph.WouldCycle(ctx, taskID, dependencyIDs, s.taskRepository.DependencyEdges)
	if err != nil {
		return err
	}
	if cycles {
		return domain.NewValidationError("dependencyIds", domain.ErrDependencyCycle)
	}

	return nil
}

func (s *TaskService) checkDependenciesExist(ctx context.Context, dependencyIDs []uint64) error {
	if len(dependencyIDs) == 0 {
		return nil
	}

	missing, err := s.taskRepository.Exists(ctx, dependencyIDs)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return domain.NewValidationError("dependencyIds", domain.ErrUnknownDependency)
	}

	return nil
}

func (s *TaskService) resolveDependencies(ctx context.Context, dependencyIDs []uint64) ([]domain.Dependency, error) {
	dependencies := make([]domain.Dependency, 0, len(dependencyIDs))
	for _, depID := range dependencyIDs {
		dep, err := s.taskRepository.GetByID(ctx, depID)
		if err != nil {
			if errors.Is(err, domain.ErrTaskNotFound) {
				dependencies = append(dependencies, domain.Dependency{DependencyID: depID})
				continue
			}
			return nil, err
		}
		dependencies = append(dependencies, domain.Dependency{
			DependencyID: depID,
			Dependency:   &domain.DependencyRef{ID: dep.ID, Title: dep.Title, Status: dep.Status},
		})
	}
	return dependencies, nil
}

func validateCreateInput(input domain.CreateTaskInput) error {
	if input.Title == "" {
		return domain.NewValidationError("title", domain.ErrInvalidTaskPayload)
	}
	if input.DueDate.IsZero() {
		return domain.NewValidationError("due_date", domain.ErrInvalidTaskPayload)
	}
	if !input.Status.Valid() {
		return domain.NewValidationError("status", domain.ErrInvalidTaskPayload)
	}
	if !input.Priority.Valid() {
		return domain.NewValidationError("priority", domain.ErrInvalidTaskPayload)
	}
	return nil
}

func validateUpdateInput(input domain.UpdateTaskInput) error {
	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		return domain.NewValidationError("title", domain.ErrInvalidTaskPayload)
	}
	if input.Status != nil && !input.Status.Valid() {
		return domain.NewValidationError("status", domain.ErrInvalidTaskPayload)
	}
	if input.Priority != nil && !input.Priority.Valid() {
		return domain.NewValidationError("priority", domain.ErrInvalidTaskPayload)
	}
	if input.DueDate != nil && input.DueDate.IsZero() {
		return domain.NewValidationError("due_date", domain.ErrInvalidTaskPayload)
	}
	return nil
}

func dedupeIDs(ids []uint64) []uint64 {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[uint64]bool, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

var _ ports.TaskService = (*TaskService)(nil)
