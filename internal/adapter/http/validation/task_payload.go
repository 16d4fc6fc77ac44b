package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"taskdeck/internal/adapter/http/dto"
	"taskdeck/internal/core/domain"
)

var ErrInvalidTaskPayload = errors.New("invalid task payload")

// Due dates arrive either as full RFC 3339, as the datetime-local shape the
// web client submits, or as a bare date.
var dueDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02",
}

func BuildCreateTaskInput(req dto.CreateTaskRequest, raw map[string]json.RawMessage) (domain.CreateTaskInput, error) {
	if hasJSONField(raw, "status") && req.Status == nil {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}
	if hasJSONField(raw, "priority") && req.Priority == nil {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}

	if req.DueDate == nil {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}
	dueDate, err := parseDueDate(*req.DueDate)
	if err != nil {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}

	status := domain.TaskStatusPending
	if req.Status != nil {
		status = domain.TaskStatus(*req.Status)
	}

	priority := domain.TaskPriorityMedium
	if req.Priority != nil {
		priority = domain.TaskPriority(*req.Priority)
	}

	return domain.CreateTaskInput{
		Title:         title,
		Description:   req.Description,
		Status:        status,
		Priority:      priority,
		DueDate:       dueDate,
		DependencyIDs: req.DependencyIDs,
	}, nil
}

func BuildUpdateTaskInput(req dto.UpdateTaskRequest, raw map[string]json.RawMessage) (domain.UpdateTaskInput, error) {
	if !hasTaskUpdateFields(raw) {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}

	var title *string
	if hasJSONField(raw, "title") && req.Title == nil {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}
	if req.Title != nil {
		value := strings.TrimSpace(*req.Title)
		if value == "" {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		title = &value
	}

	var status *domain.TaskStatus
	if hasJSONField(raw, "status") && req.Status == nil {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}
	if req.Status != nil {
		value := domain.TaskStatus(*req.Status)
		status = &value
	}

	var priority *domain.TaskPriority
	if hasJSONField(raw, "priority") && req.Priority == nil {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}
	if req.Priority != nil {
		value := domain.TaskPriority(*req.Priority)
		priority = &value
	}

	descriptionSet := hasJSONField(raw, "description")
	if descriptionSet && !isJSONNull(raw["description"]) && req.Description == nil {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}

	var dueDate *time.Time
	if hasJSONField(raw, "due_date") {
		// Due date is required on the task, so null is not accepted here.
		if isJSONNull(raw["due_date"]) || req.DueDate == nil {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		parsed, err := parseDueDate(*req.DueDate)
		if err != nil {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		dueDate = &parsed
	}

	dependencyIDsSet := hasJSONField(raw, "dependencyIds")
	dependencyIDs := req.DependencyIDs
	if dependencyIDsSet && isJSONNull(raw["dependencyIds"]) {
		// An explicit null clears the dependency set.
		dependencyIDs = nil
	}

	return domain.UpdateTaskInput{
		Title:            title,
		Description:      req.Description,
		DescriptionSet:   descriptionSet,
		Status:           status,
		Priority:         priority,
		DueDate:          dueDate,
		DependencyIDs:    dependencyIDs,
		DependencyIDsSet: dependencyIDsSet,
	}, nil
}

func parseDueDate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range dueDateLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return parsed, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func hasTaskUpdateFields(raw map[string]json.RawMessage) bool {
	return hasJSONField(raw, "title") ||
		hasJSONField(raw, "description") ||
		hasJSONField(raw, "status") ||
		hasJSONField(raw, "priority") ||
		hasJSONField(raw, "due_date") ||
		hasJSONField(raw, "dependencyIds")
}

func hasJSONField(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}
