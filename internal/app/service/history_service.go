package service

import (
	"context"

	"taskdeck/internal/core/domain"
	"taskdeck/internal/core/ports"
)

type HistoryService struct {
	historyRepository ports.HistoryRepository
}

func NewHistoryService(historyRepository ports.HistoryRepository) *HistoryService {
	return &HistoryService{historyRepository: historyRepository}
}

func (s *HistoryService) ListHistory(ctx context.Context) ([]domain.HistoryLogEntry, error) {
	return s.historyRepository.List(ctx)
}

var _ ports.HistoryService = (*HistoryService)(nil)
