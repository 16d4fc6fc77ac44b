package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"taskdeck/internal/core/domain"
	"taskdeck/internal/core/ports"
)

const selectTaskQuery = `
SELECT id, title, description, status, priority, due_date, created_at, updated_at
FROM tasks
WHERE id = ?;
`

const listTasksQuery = `
SELECT id, title, description, status, priority, due_date, created_at, updated_at
FROM tasks
ORDER BY id;
`

// Dependency targets are LEFT JOINed: an edge whose target was deleted comes
// back with NULL columns and is surfaced as unresolved, not dropped.
const selectDependenciesQuery = `
SELECT
  d.id,
  d.task_id,
  d.dependency_id,
  t.title  AS dependency_title,
  t.status AS dependency_status
FROM task_dependencies d
LEFT JOIN tasks t ON t.id = d.dependency_id
WHERE d.task_id IN (?)
ORDER BY d.id;
`

type TaskRepository struct {
	db *sqlx.DB
}

type taskRow struct {
	ID          uint64         `db:"id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	Status      string         `db:"status"`
	Priority    string         `db:"priority"`
	DueDate     time.Time      `db:"due_date"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

type dependencyRow struct {
	ID               uint64         `db:"id"`
	TaskID           uint64         `db:"task_id"`
	DependencyID     uint64         `db:"dependency_id"`
	DependencyTitle  sql.NullString `db:"dependency_title"`
	DependencyStatus sql.NullString `db:"dependency_status"`
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.Task{}, err
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx,
		"INSERT INTO tasks (title, description, status, priority, due_date) VALUES (?, ?, ?, ?, ?)",
		input.Title,
		toNullString(input.Description),
		string(input.Status),
		string(input.Priority),
		input.DueDate,
	)
	if err != nil {
		return domain.Task{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return domain.Task{}, err
	}

	if err := insertDependencyEdges(ctx, tx, uint64(id), input.DependencyIDs); err != nil {
		return domain.Task{}, err
	}

	if err := tx.Commit(); err != nil {
		return domain.Task{}, err
	}

	return r.GetByID(ctx, uint64(id))
}

func (r *TaskRepository) GetByID(ctx context.Context, id uint64) (domain.Task, error) {
	var row taskRow
	if err := r.db.GetContext(ctx, &row, selectTaskQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, err
	}

	dependencies, err := r.loadDependencies(ctx, []uint64{id})
	if err != nil {
		return domain.Task{}, err
	}

	task := mapTaskRowToDomainTask(row)
	task.Dependencies = dependencies[id]
	return task, nil
}

func (r *TaskRepository) Update(ctx context.Context, id uint64, input domain.UpdateTaskInput) (domain.Task, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.Task{}, err
	}
	defer func() { _ = tx.Rollback() }()

	setClauses := make([]string, 0, 6)
	args := make([]interface{}, 0, 6)
	if input.Title != nil {
		setClauses = append(setClauses, "title = ?")
		args = append(args, *input.Title)
	}
	if input.DescriptionSet {
		setClauses = append(setClauses, "description = ?")
		args = append(args, toNullString(input.Description))
	}
	if input.Status != nil {
		setClauses = append(setClauses, "status = ?")
		args = append(args, string(*input.Status))
	}
	if input.Priority != nil {
		setClauses = append(setClauses, "priority = ?")
		args = append(args, string(*input.Priority))
	}
	if input.DueDate != nil {
		setClauses = append(setClauses, "due_date = ?")
		args = append(args, *input.DueDate)
	}

	if len(setClauses) > 0 {
		args = append(args, id)
		query := "UPDATE tasks SET " + strings.Join(setClauses, ", ") + " WHERE id = ?"
		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return domain.Task{}, err
		}
		if affected, err := result.RowsAffected(); err == nil && affected == 0 {
			if exists, err := taskExistsTx(ctx, tx, id); err != nil {
				return domain.Task{}, err
			} else if !exists {
				return domain.Task{}, domain.ErrTaskNotFound
			}
		}
	} else {
		if exists, err := taskExistsTx(ctx, tx, id); err != nil {
			return domain.Task{}, err
		} else if !exists {
			return domain.Task{}, domain.ErrTaskNotFound
		}
	}

	if input.DependencyIDsSet {
		if _, err := tx.ExecContext(ctx, "DELETE FROM task_dependencies WHERE task_id = ?", id); err != nil {
			return domain.Task{}, err
		}
		if err := insertDependencyEdges(ctx, tx, id, input.DependencyIDs); err != nil {
			return domain.Task{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.Task{}, err
	}

	return r.GetByID(ctx, id)
}

// Delete removes the task and its outgoing edges. Incoming edges from other
// tasks are kept and read back as unresolved.
func (r *TaskRepository) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrTaskNotFound
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM task_dependencies WHERE task_id = ?", id); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *TaskRepository) List(ctx context.Context) ([]domain.Task, error) {
	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, listTasksQuery); err != nil {
		return nil, err
	}

	ids := make([]uint64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	dependencies, err := r.loadDependencies(ctx, ids)
	if err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		task := mapTaskRowToDomainTask(row)
		task.Dependencies = dependencies[row.ID]
		tasks = append(tasks, task)
	}

	return tasks, nil
}

func (r *TaskRepository) Exists(ctx context.Context, ids []uint64) ([]uint64, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In("SELECT id FROM tasks WHERE id IN (?)", ids)
	if err != nil {
		return nil, err
	}

	var found []uint64
	if err := r.db.SelectContext(ctx, &found, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}

	present := make(map[uint64]bool, len(found))
	for _, id := range found {
		present[id] = true
	}

	var missing []uint64
	for _, id := range ids {
		if !present[id] {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

func (r *TaskRepository) DependencyEdges(ctx context.Context, taskIDs []uint64) (map[uint64][]uint64, error) {
	if len(taskIDs) == 0 {
		return map[uint64][]uint64{}, nil
	}

	query, args, err := sqlx.In("SELECT task_id, dependency_id FROM task_dependencies WHERE task_id IN (?)", taskIDs)
	if err != nil {
		return nil, err
	}

	var rows []struct {
		TaskID       uint64 `db:"task_id"`
		DependencyID uint64 `db:"dependency_id"`
	}
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}

	edges := make(map[uint64][]uint64, len(taskIDs))
	for _, row := range rows {
		edges[row.TaskID] = append(edges[row.TaskID], row.DependencyID)
	}
	return edges, nil
}

func (r *TaskRepository) loadDependencies(ctx context.Context, taskIDs []uint64) (map[uint64][]domain.Dependency, error) {
	if len(taskIDs) == 0 {
		return map[uint64][]domain.Dependency{}, nil
	}

	query, args, err := sqlx.In(selectDependenciesQuery, taskIDs)
	if err != nil {
		return nil, err
	}

	var rows []dependencyRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}

	dependencies := make(map[uint64][]domain.Dependency, len(taskIDs))
	for _, row := range rows {
		dep := domain.Dependency{ID: row.ID, DependencyID: row.DependencyID}
		if row.DependencyTitle.Valid && row.DependencyStatus.Valid {
			dep.Dependency = &domain.DependencyRef{
				ID:     row.DependencyID,
				Title:  row.DependencyTitle.String,
				Status: domain.TaskStatus(row.DependencyStatus.String),
			}
		}
		dependencies[row.TaskID] = append(dependencies[row.TaskID], dep)
	}

	return dependencies, nil
}

func insertDependencyEdges(ctx context.Context, tx *sqlx.Tx, taskID uint64, dependencyIDs []uint64) error {
	for _, depID := range dependencyIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO task_dependencies (task_id, dependency_id) VALUES (?, ?)",
			taskID, depID,
		); err != nil {
			return err
		}
	}
	return nil
}

func taskExistsTx(ctx context.Context, tx *sqlx.Tx, id uint64) (bool, error) {
	var found uint64
	err := tx.GetContext(ctx, &found, "SELECT id FROM tasks WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func mapTaskRowToDomainTask(row taskRow) domain.Task {
	task := domain.Task{
		ID:        row.ID,
		Title:     row.Title,
		Status:    domain.TaskStatus(row.Status),
		Priority:  domain.TaskPriority(row.Priority),
		DueDate:   row.DueDate,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}

	if row.Description.Valid {
		value := row.Description.String
		task.Description = &value
	}

	return task
}

func toNullString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}
