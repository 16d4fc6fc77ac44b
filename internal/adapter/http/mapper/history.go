package mapper

import (
	"time"

	"taskdeck/internal/adapter/http/dto"
	"taskdeck/internal/core/domain"
)

func ToHistoryLogItems(entries []domain.HistoryLogEntry) []dto.HistoryLogItem {
	items := make([]dto.HistoryLogItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, ToHistoryLogItem(entry))
	}
	return items
}

func ToHistoryLogItem(entry domain.HistoryLogEntry) dto.HistoryLogItem {
	item := dto.HistoryLogItem{
		ID:           entry.ID,
		TaskID:       entry.TaskID,
		Date:         entry.Date.Format(time.RFC3339),
		PrevStatus:   string(entry.PrevStatus),
		Status:       string(entry.Status),
		PrevPriority: string(entry.PrevPriority),
		Priority:     string(entry.Priority),
	}

	if entry.TaskTitle != "" {
		item.Task = &dto.HistoryTaskBrief{Title: entry.TaskTitle}
	}

	return item
}
