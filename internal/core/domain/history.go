package domain

import "time"

// HistoryLogEntry records one accepted status or priority change. Entries are
// append-only: they are never mutated and survive deletion of the task they
// reference.
type HistoryLogEntry struct {
	ID           uint64
	TaskID       uint64
	Date         time.Time
	PrevStatus   TaskStatus
	Status       TaskStatus
	PrevPriority TaskPriority
	Priority     TaskPriority

	// TaskTitle is resolved at read time; empty when the task has since
	// been deleted.
	TaskTitle string
}
