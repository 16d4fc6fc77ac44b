package memory

import (
	"context"
	"sort"
	"sync"

	"taskdeck/internal/core/domain"
	"taskdeck/internal/core/ports"
)

type HistoryRepository struct {
	mu      sync.RWMutex
	entries []domain.HistoryLogEntry
	nextID  uint64
	tasks   *TaskRepository
}

var _ ports.HistoryRepository = (*HistoryRepository)(nil)

// NewHistoryRepository resolves task titles at read time through the task
// repository; entries whose task was deleted keep an empty title.
func NewHistoryRepository(tasks *TaskRepository) *HistoryRepository {
	return &HistoryRepository{tasks: tasks}
}

func (r *HistoryRepository) Append(_ context.Context, entry domain.HistoryLogEntry) (domain.HistoryLogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	entry.ID = r.nextID
	entry.TaskTitle = ""
	r.entries = append(r.entries, entry)

	return entry, nil
}

func (r *HistoryRepository) List(_ context.Context) ([]domain.HistoryLogEntry, error) {
	r.mu.RLock()
	entries := make([]domain.HistoryLogEntry, len(r.entries))
	copy(entries, r.entries)
	r.mu.RUnlock()

	for i := range entries {
		if title, ok := r.tasks.title(entries[i].TaskID); ok {
			entries[i].TaskTitle = title
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Date.Equal(entries[j].Date) {
			return entries[i].ID > entries[j].ID
		}
		return entries[i].Date.After(entries[j].Date)
	})

	return entries, nil
}
