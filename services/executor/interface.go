package executor

import (
	"context"

	executorRepo "marketplace/database/repository/executor"
	"marketplace/models"

	"go.uber.org/zap"
)

type ExecutorService interface {
	Register(ctx context.Context, req models.RegisterExecutorRequest) (*models.Executor, error)
	GetExecutor(ctx context.Context, id int64) (*models.Executor, error)
	ListExecutors(ctx context.Context, criteria models.ExecutorSearchCriteria) ([]models.Executor, error)
}

// DefaultExecutorService is the production implementation.
type DefaultExecutorService struct {
	Repo   executorRepo.ExecutorRepository
	Logger *zap.Logger
}
