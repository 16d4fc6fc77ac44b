package mapper

import (
	"time"

	"taskdeck/internal/adapter/http/dto"
	"taskdeck/internal/core/domain"
)

func ToTaskItems(tasks []domain.Task) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskItem(task))
	}
	return items
}

func ToTaskItem(task domain.Task) dto.TaskItem {
	item := dto.TaskItem{
		ID:           task.ID,
		Title:        task.Title,
		Status:       string(task.Status),
		Priority:     string(task.Priority),
		DueDate:      task.DueDate.Format(time.RFC3339),
		IsOverdue:    task.Overdue,
		Dependencies: make([]dto.DependencyItem, 0, len(task.Dependencies)),
		CreatedAt:    task.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    task.UpdatedAt.Format(time.RFC3339),
	}

	if task.Description != nil {
		value := *task.Description
		item.Description = &value
	}

	for _, dep := range task.Dependencies {
		depItem := dto.DependencyItem{ID: dep.ID}
		if dep.Dependency != nil {
			depItem.Dependency = &dto.DependencyRef{
				ID:     dep.Dependency.ID,
				Title:  dep.Dependency.Title,
				Status: string(dep.Dependency.Status),
			}
		}
		item.Dependencies = append(item.Dependencies, depItem)
	}

	return item
}
