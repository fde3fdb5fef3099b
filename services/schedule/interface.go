package schedule

import (
	"context"

	executorRepo "marketplace/database/repository/executor"
	workingHoursRepo "marketplace/database/repository/workinghours"
	"marketplace/models"

	"go.uber.org/zap"
)

// ScheduleService manages executors' recurring weekly working hours.
type ScheduleService interface {
	GetWeeklyHours(ctx context.Context, executorID int64) ([]models.WeeklyHours, error)
	GetDay(ctx context.Context, executorID int64, dayOfWeek int) (*models.WeeklyHours, error)
	SetWeeklyHours(ctx context.Context, executorID int64, rows []models.WeeklyHours) ([]models.WeeklyHours, error)
}

// DefaultScheduleService is the production implementation. Cache may be nil.
type DefaultScheduleService struct {
	Repo      workingHoursRepo.WorkingHoursRepository
	Executors executorRepo.ExecutorRepository
	Cache     WeekCache
	Logger    *zap.Logger
}

func NewDefaultScheduleService(
	repo workingHoursRepo.WorkingHoursRepository,
	executors executorRepo.ExecutorRepository,
	cache WeekCache,
	logger *zap.Logger,
) *DefaultScheduleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultScheduleService{
		Repo:      repo,
		Executors: executors,
		Cache:     cache,
		Logger:    logger,
	}
}
