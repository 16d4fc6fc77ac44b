package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskdeck/internal/adapter/http/mapper"
	"taskdeck/internal/adapter/http/middleware"
	"taskdeck/internal/core/ports"
	"taskdeck/pkg/apierrors"
)

type HistoryHandler struct {
	historyService ports.HistoryService
}

func NewHistoryHandler(historyService ports.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

func (h *HistoryHandler) ListHistory(c *gin.Context) {
	lang := middleware.GetLang(c)

	entries, err := h.historyService.ListHistory(c.Request.Context())
	if err != nil {
		zap.L().Error("failed to list history logs", zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailListHistory, lang),
		)
		return
	}

	c.JSON(http.StatusOK, mapper.ToHistoryLogItems(entries))
}
