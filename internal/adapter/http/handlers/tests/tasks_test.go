package tests

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"taskdeck/internal/adapter/http/dto"
	"taskdeck/internal/adapter/http/handlers"
	"taskdeck/internal/adapter/http/middleware"
	"taskdeck/internal/core/domain"
	"taskdeck/pkg/apierrors"
	"taskdeck/pkg/translator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type taskServiceMock struct {
	mock.Mock
}

func (m *taskServiceMock) CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) GetTask(ctx context.Context, id uint64) (domain.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) UpdateTask(ctx context.Context, id uint64, input domain.UpdateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, id, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) DeleteTask(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *taskServiceMock) ListTasks(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	args := m.Called(ctx, filter)

	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Error(1)
}

func newTaskRouter(handler *handlers.TaskHandler) *gin.Engine {
	router := gin.New()
	api := router.Group("/api", middleware.LanguageMiddleware())
	api.POST("/tasks", handler.CreateTask)
	api.GET("/tasks", handler.ListTasks)
	api.GET("/tasks/:id", handler.GetTask)
	api.PUT("/tasks/:id", handler.UpdateTask)
	api.DELETE("/tasks/:id", handler.DeleteTask)
	return router
}

func TestTaskHandler_ListTasks_Success(t *testing.T) {
	description := "ship the gating engine"
	dueDate := time.Date(2026, 4, 20, 18, 0, 0, 0, time.UTC)
	createdAt := time.Date(2026, 4, 13, 10, 20, 30, 0, time.UTC)
	updatedAt := time.Date(2026, 4, 13, 11, 20, 30, 0, time.UTC)

	serviceMock := new(taskServiceMock)
	serviceMock.On("ListTasks", mock.Anything, domain.TaskFilterAll).Return(
		[]domain.Task{
			{
				ID:          1,
				Title:       "Release engine",
				Description: &description,
				Status:      domain.TaskStatusInProgress,
				Priority:    domain.TaskPriorityHigh,
				DueDate:     dueDate,
				Overdue:     true,
				Dependencies: []domain.Dependency{
					{
						ID:           11,
						DependencyID: 2,
						Dependency: &domain.DependencyRef{
							ID:     2,
							Title:  "Write migrations",
							Status: domain.TaskStatusCompleted,
						},
					},
					{
						ID:           12,
						DependencyID: 3,
					},
				},
				CreatedAt: createdAt,
				UpdatedAt: updatedAt,
			},
		},
		nil,
	).Once()
	handler := handlers.NewTaskHandler(serviceMock)
	router := newTaskRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.Header.Set("Accept-Language", translator.LanguageEn)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got []dto.TaskItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)

	require.Equal(t, uint64(1), got[0].ID)
	require.Equal(t, "Release engine", got[0].Title)
	require.Equal(t, "ship the gating engine", *got[0].Description)
	require.Equal(t, "in_progress", got[0].Status)
	require.Equal(t, "high", got[0].Priority)
	require.Equal(t, "2026-04-20T18:00:00Z", got[0].DueDate)
	require.True(t, got[0].IsOverdue)
	require.Len(t, got[0].Dependencies, 2)
	require.Equal(t, uint64(11), got[0].Dependencies[0].ID)
	require.NotNil(t, got[0].Dependencies[0].Dependency)
	require.Equal(t, "Write migrations", got[0].Dependencies[0].Dependency.Title)
	require.Equal(t, "completed", got[0].Dependencies[0].Dependency.Status)
	// A deleted dependency target surfaces as a null ref, not a dropped edge.
	require.Nil(t, got[0].Dependencies[1].Dependency)
	require.Equal(t, "2026-04-13T10:20:30Z", got[0].CreatedAt)
	require.Equal(t, "2026-04-13T11:20:30Z", got[0].UpdatedAt)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_ListTasks_PassesFilter(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("ListTasks", mock.Anything, domain.TaskFilterOverdue).Return([]domain.Task{}, nil).Once()
	handler := handlers.NewTaskHandler(serviceMock)
	router := newTaskRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/tasks?filter=overdue", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_ListTasks_InvalidFilter(t *testing.T) {
	serviceMock := new(taskServiceMock)
	handler := handlers.NewTaskHandler(serviceMock)
	router := newTaskRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/tasks?filter=soon", nil)
	req.Header.Set("Accept-Language", translator.LanguageEn)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Invalid filter", got.ErrDetails.Message)
}

func TestTaskHandler_ListTasks_Error(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("ListTasks", mock.Anything, domain.TaskFilterAll).Return(nil, errors.New("db is down")).Once()
	handler := handlers.NewTaskHandler(serviceMock)
	router := newTaskRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.Header.Set("Accept-Language", translator.LanguageEn)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, http.StatusInternalServerError, got.ErrDetails.Code)
	require.Equal(t, "failed to list tasks", got.ErrDetails.Message)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_GetTask_Success(t *testing.T) {
	dueDate := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	serviceMock := new(taskServiceMock)
	serviceMock.On("GetTask", mock.Anything, uint64(7)).Return(
		domain.Task{
			ID:       7,
			Title:    "Single task",
			Status:   domain.TaskStatusPending,
			Priority: domain.TaskPriorityLow,
			DueDate:  dueDate,
		},
		nil,
	).Once()
	handler := handlers.NewTaskHandler(serviceMock)
	router := newTaskRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/tasks/7", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got dto.TaskItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, uint64(7), got.ID)
	require.Equal(t, "pending", got.Status)
	require.Equal(t, "low", got.Priority)
	require.Len(t, got.Dependencies, 0)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_GetTask_InvalidTaskID(t *testing.T) {
	handler := handlers.NewTaskHandler(new(taskServiceMock))
	router := newTaskRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/tasks/invalid", nil)
	req.Header.Set("Accept-Language", translator.LanguageEn)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Invalid id", got.ErrDetails.Message)
}

func TestTaskHandler_GetTask_NotFound(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("GetTask", mock.Anything, uint64(999)).Return(domain.Task{}, domain.ErrTaskNotFound).Once()
	handler := handlers.NewTaskHandler(serviceMock)
	router := newTaskRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/tasks/999", nil)
	req.Header.Set("Accept-Language", translator.LanguageEn)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Task not found", got.ErrDetails.Message)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_CreateTask_Success(t *testing.T) {
	dueDate := time.Date(2026, 6, 1, 12, 30, 0, 0, time.UTC)

	serviceMock := new(taskServiceMock)
	serviceMock.On("CreateTask", mock.Anything, mock.MatchedBy(func(input domain.CreateTaskInput) bool {
		return input.Title == "New task" &&
			input.Status == domain.TaskStatusPending &&
			input.Priority == domain.TaskPriorityHigh &&
			len(input.DependencyIDs) == 2
	})).Return(
		domain.Task{
			ID:       3,
			Title:    "New task",
			Status:   domain.TaskStatusPending,
			Priority: domain.TaskPriorityHigh,
			DueDate:  dueDate,
			Dependencies: []domain.Dependency{
				{ID: 21, DependencyID: 1, Dependency: &domain.DependencyRef{ID: 1, Title: "dep", Status: domain.TaskStatusPending}},
				{ID: 22, DependencyID: 2, Dependency: &domain.DependencyRef{ID: 2, Title: "dep2", Status: domain.TaskStatusCompleted}},
			},
		},
		nil,
	).Once()
	handler := handlers.NewTaskHandler(serviceMock)
	router := newTaskRouter(handler)

	body := `{"title":"New task","due_date":"2026-06-01T12:30","priority":"high","dependencyIds":[1,2]}`
	req := httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var got dto.TaskItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, uint64(3), got.ID)
	require.Len(t, got.Dependencies, 2)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_CreateTask_InvalidPayload(t *testing.T) {
	handler := handlers.NewTaskHandler(new(taskServiceMock))
	router := newTaskRouter(handler)

	body := `{"title":"   ","due_date":"2026-06-01T12:30"}`
	req := httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", translator.LanguageEn)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Invalid task payload", got.ErrDetails.Message)
}

func TestTaskHandler_CreateTask_UnknownDependency(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("CreateTask", mock.Anything, mock.Anything).Return(
		domain.Task{},
		domain.NewValidationError("dependencyIds", domain.ErrUnknownDependency),
	).Once()
	handler := handlers.NewTaskHandler(serviceMock)
	router := newTaskRouter(handler)

	body := `{"title":"task","due_date":"2026-06-01T12:30","dependencyIds":[404]}`
	req := httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", translator.LanguageEn)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Unknown dependency task", got.ErrDetails.Message)
	require.NotNil(t, got.ErrDetails.Details)
	require.Equal(t, "dependencyIds", got.ErrDetails.Details.Field)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_UpdateTask_DependencyBlocked(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("UpdateTask", mock.Anything, uint64(5), mock.Anything).Return(
		domain.Task{},
		&domain.DependencyBlockedError{TaskID: 5, BlockingIDs: []uint64{2, 9}},
	).Once()
	handler := handlers.NewTaskHandler(serviceMock)
	router := newTaskRouter(handler)

	body := `{"status":"completed"}`
	req := httptest.NewRequest(http.MethodPut, "/api/tasks/5", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", translator.LanguageEn)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)

	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, http.StatusConflict, got.ErrDetails.Code)
	require.Equal(t, "Task is blocked by incomplete dependencies", got.ErrDetails.Message)
	require.NotNil(t, got.ErrDetails.Details)
	require.Equal(t, []uint64{2, 9}, got.ErrDetails.Details.BlockingIDs)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_UpdateTask_DependencyCycle(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("UpdateTask", mock.Anything, uint64(5), mock.Anything).Return(
		domain.Task{},
		domain.NewValidationError("dependencyIds", domain.ErrDependencyCycle),
	).Once()
	handler := handlers.NewTaskHandler(serviceMock)
	router := newTaskRouter(handler)

	body := `{"dependencyIds":[8]}`
	req := httptest.NewRequest(http.MethodPut, "/api/tasks/5", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", translator.LanguageEn)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Dependencies would create a cycle", got.ErrDetails.Message)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_UpdateTask_NotFound(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("UpdateTask", mock.Anything, uint64(123), mock.Anything).Return(
		domain.Task{},
		domain.ErrTaskNotFound,
	).Once()
	handler := handlers.NewTaskHandler(serviceMock)
	router := newTaskRouter(handler)

	body := `{"title":"renamed"}`
	req := httptest.NewRequest(http.MethodPut, "/api/tasks/123", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", translator.LanguageEn)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_UpdateTask_EmptyPayload(t *testing.T) {
	handler := handlers.NewTaskHandler(new(taskServiceMock))
	router := newTaskRouter(handler)

	req := httptest.NewRequest(http.MethodPut, "/api/tasks/5", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", translator.LanguageEn)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTaskHandler_DeleteTask_Success(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("DeleteTask", mock.Anything, uint64(4)).Return(nil).Once()
	handler := handlers.NewTaskHandler(serviceMock)
	router := newTaskRouter(handler)

	req := httptest.NewRequest(http.MethodDelete, "/api/tasks/4", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_DeleteTask_NotFound(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("DeleteTask", mock.Anything, uint64(4)).Return(domain.ErrTaskNotFound).Once()
	handler := handlers.NewTaskHandler(serviceMock)
	router := newTaskRouter(handler)

	req := httptest.NewRequest(http.MethodDelete, "/api/tasks/4", nil)
	req.Header.Set("Accept-Language", translator.LanguageEn)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	serviceMock.AssertExpectations(t)
}
