package ports

import (
	"context"

	"taskdeck/internal/core/domain"
)

// HistoryRepository is append-only: entries are never updated or deleted, and
// they outlive the task they reference.
type HistoryRepository interface {
	Append(ctx context.Context, entry domain.HistoryLogEntry) (domain.HistoryLogEntry, error)
	// List returns entries ordered by date descending, ties broken by id
	// descending, with the task title resolved when the task still exists.
	List(ctx context.Context) ([]domain.HistoryLogEntry, error)
}

type HistoryService interface {
	ListHistory(ctx context.Context) ([]domain.HistoryLogEntry, error)
}
