package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskdeck/internal/adapter/http/dto"
	"taskdeck/internal/adapter/http/mapper"
	"taskdeck/internal/adapter/http/middleware"
	"taskdeck/internal/adapter/http/validation"
	"taskdeck/internal/core/domain"
	"taskdeck/internal/core/ports"
	"taskdeck/pkg/apierrors"
)

type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	lang := middleware.GetLang(c)

	filter := domain.TaskFilter(c.DefaultQuery("filter", string(domain.TaskFilterAll)))
	if !filter.Valid() {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidFilter, lang),
		)
		return
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), filter)
	if err != nil {
		zap.L().Error("failed to list tasks", zap.String("filter", string(filter)), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailListTask, lang),
		)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(tasks))
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	lang := middleware.GetLang(c)

	taskID, ok := parseTaskID(c, lang)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			c.JSON(
				http.StatusNotFound,
				apierrors.CreateError(http.StatusNotFound, apierrors.MsgTaskNotFound, lang),
			)
			return
		}

		zap.L().Error("failed to get task", zap.Uint64("task_id", taskID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailGetTask, lang),
		)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	lang := middleware.GetLang(c)

	var req dto.CreateTaskRequest
	raw, ok := bindTaskPayload(c, lang, &req)
	if !ok {
		return
	}

	input, err := validation.BuildCreateTaskInput(req, raw)
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), input)
	if err != nil {
		h.respondMutationError(c, lang, err, apierrors.MsgFailCreateTask, "failed to create task")
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTaskItem(task))
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	lang := middleware.GetLang(c)

	taskID, ok := parseTaskID(c, lang)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	raw, ok := bindTaskPayload(c, lang, &req)
	if !ok {
		return
	}

	input, err := validation.BuildUpdateTaskInput(req, raw)
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), taskID, input)
	if err != nil {
		h.respondMutationError(c, lang, err, apierrors.MsgFailUpdateTask, "failed to update task")
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	lang := middleware.GetLang(c)

	taskID, ok := parseTaskID(c, lang)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), taskID); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			c.JSON(
				http.StatusNotFound,
				apierrors.CreateError(http.StatusNotFound, apierrors.MsgTaskNotFound, lang),
			)
			return
		}

		zap.L().Error("failed to delete task", zap.Uint64("task_id", taskID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailDeleteTask, lang),
		)
		return
	}

	c.Status(http.StatusNoContent)
}

// respondMutationError maps service errors from create/update to their HTTP
// shape: 404 for unknown ids, 409 with blocking ids for gated completions,
// 400 with field detail for validation failures, 500 otherwise.
func (h *TaskHandler) respondMutationError(c *gin.Context, lang string, err error, failMsgKey, logMsg string) {
	if errors.Is(err, domain.ErrTaskNotFound) {
		c.JSON(
			http.StatusNotFound,
			apierrors.CreateError(http.StatusNotFound, apierrors.MsgTaskNotFound, lang),
		)
		return
	}

	var blocked *domain.DependencyBlockedError
	if errors.As(err, &blocked) {
		c.JSON(
			http.StatusConflict,
			apierrors.CreateErrorWithDetails(
				http.StatusConflict,
				apierrors.MsgDependencyBlocked,
				lang,
				&apierrors.ErrDetails{BlockingIDs: blocked.BlockingIDs},
			),
		)
		return
	}

	var invalid *domain.ValidationError
	if errors.As(err, &invalid) {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateErrorWithDetails(
				http.StatusBadRequest,
				validationMsgKey(invalid),
				lang,
				&apierrors.ErrDetails{Field: invalid.Field},
			),
		)
		return
	}

	zap.L().Error(logMsg, zap.Error(err))
	c.JSON(
		http.StatusInternalServerError,
		apierrors.CreateError(http.StatusInternalServerError, failMsgKey, lang),
	)
}

func validationMsgKey(err *domain.ValidationError) string {
	switch {
	case errors.Is(err, domain.ErrDependencyCycle):
		return apierrors.MsgDependencyCycle
	case errors.Is(err, domain.ErrSelfDependency):
		return apierrors.MsgSelfDependency
	case errors.Is(err, domain.ErrUnknownDependency):
		return apierrors.MsgUnknownDependency
	default:
		return apierrors.MsgInvalidTaskPayload
	}
}

// bindTaskPayload decodes the body into both the typed request and a raw
// field map, so builders can tell an absent field from an explicit null.
func bindTaskPayload(c *gin.Context, lang string, req interface{}) (map[string]json.RawMessage, bool) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return nil, false
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return nil, false
	}

	if err := json.Unmarshal(body, req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return nil, false
	}

	return raw, true
}

func parseTaskID(c *gin.Context, lang string) (uint64, bool) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || taskID == 0 {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskID, lang),
		)
		return 0, false
	}
	return taskID, true
}
