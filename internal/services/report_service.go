package services

import (
	"context"

	"campusfix/internal/models"
	"campusfix/internal/repositories"
)

// ReportService aggregates task counts server-side so the dashboard does not
// have to pull the whole task set.
type ReportService interface {
	Summary(ctx context.Context) (*models.TaskSummary, error)
}

type reportService struct {
	tasks repositories.TaskRepository
}

func NewReportService(tasks repositories.TaskRepository) ReportService {
	return &reportService{tasks: tasks}
}

func (s *reportService) Summary(ctx context.Context) (*models.TaskSummary, error) {
	byStatus, err := s.tasks.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	byWorkType, err := s.tasks.CountByWorkType(ctx)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, n := range byStatus {
		total += n
	}
	return &models.TaskSummary{
		Total:      total,
		ByStatus:   byStatus,
		ByWorkType: byWorkType,
	}, nil
}
