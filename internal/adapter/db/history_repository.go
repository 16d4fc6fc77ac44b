package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"taskdeck/internal/core/domain"
	"taskdeck/internal/core/ports"
)

// Entries are append-only. There is no foreign key to tasks, so a log row
// outlives the task it references and its title simply stops resolving.
const listHistoryQuery = `
SELECT
  h.id,
  h.task_id,
  h.date,
  h.prev_status,
  h.status,
  h.prev_priority,
  h.priority,
  t.title AS task_title
FROM task_history_logs h
LEFT JOIN tasks t ON t.id = h.task_id
ORDER BY h.date DESC, h.id DESC;
`

type HistoryRepository struct {
	db *sqlx.DB
}

type historyRow struct {
	ID           uint64         `db:"id"`
	TaskID       uint64         `db:"task_id"`
	Date         time.Time      `db:"date"`
	PrevStatus   string         `db:"prev_status"`
	Status       string         `db:"status"`
	PrevPriority string         `db:"prev_priority"`
	Priority     string         `db:"priority"`
	TaskTitle    sql.NullString `db:"task_title"`
}

var _ ports.HistoryRepository = (*HistoryRepository)(nil)

func NewHistoryRepository(db *sqlx.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) Append(ctx context.Context, entry domain.HistoryLogEntry) (domain.HistoryLogEntry, error) {
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO task_history_logs (task_id, date, prev_status, status, prev_priority, priority) VALUES (?, ?, ?, ?, ?, ?)",
		entry.TaskID,
		entry.Date,
		string(entry.PrevStatus),
		string(entry.Status),
		string(entry.PrevPriority),
		string(entry.Priority),
	)
	if err != nil {
		return domain.HistoryLogEntry{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return domain.HistoryLogEntry{}, err
	}
	entry.ID = uint64(id)

	return entry, nil
}

func (r *HistoryRepository) List(ctx context.Context) ([]domain.HistoryLogEntry, error) {
	var rows []historyRow
	if err := r.db.SelectContext(ctx, &rows, listHistoryQuery); err != nil {
		return nil, err
	}

	entries := make([]domain.HistoryLogEntry, 0, len(rows))
	for _, row := range rows {
		entry := domain.HistoryLogEntry{
			ID:           row.ID,
			TaskID:       row.TaskID,
			Date:         row.Date,
			PrevStatus:   domain.TaskStatus(row.PrevStatus),
			Status:       domain.TaskStatus(row.Status),
			PrevPriority: domain.TaskPriority(row.PrevPriority),
			Priority:     domain.TaskPriority(row.Priority),
		}
		if row.TaskTitle.Valid {
			entry.TaskTitle = row.TaskTitle.String
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
