package executor

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"marketplace/models"
	"marketplace/utils"

	"go.uber.org/zap"
)

// Register onboards a new executor. Emails are unique, compared case-insensitively.
func (s *DefaultExecutorService) Register(ctx context.Context, req models.RegisterExecutorRequest) (*models.Executor, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if name == "" {
		return nil, utils.NewValidationError("name is required")
	}
	if email == "" {
		return nil, utils.NewValidationError("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, utils.NewValidationError("invalid email %q", req.Email)
	}
	if req.HourlyRate < 0 {
		return nil, utils.NewValidationError("hourlyRate must not be negative")
	}

	existing, err := s.Repo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, utils.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, utils.NewConflictError("an executor with email %s already exists", email)
	}

	now := time.Now().UTC()
	executor := &models.Executor{
		Name:           name,
		Email:          email,
		Phone:          strings.TrimSpace(req.Phone),
		Specialization: strings.TrimSpace(req.Specialization),
		City:           strings.TrimSpace(req.City),
		HourlyRate:     req.HourlyRate,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	err = s.Repo.Create(ctx, executor)
	if errors.Is(err, utils.ErrDuplicate) {
		return nil, utils.NewConflictError("an executor with email %s already exists", email)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create executor: %w", err)
	}

	s.logger().Info("Executor registered", zap.Int64("executorID", executor.ID), zap.String("email", executor.Email))
	return executor, nil
}

func (s *DefaultExecutorService) GetExecutor(ctx context.Context, id int64) (*models.Executor, error) {
	if id <= 0 {
		return nil, utils.NewValidationError("executor id must be a positive integer")
	}
	executor, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, utils.ErrNotFound) {
		return nil, &utils.NotFoundError{Entity: "executor", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load executor: %w", err)
	}
	return executor, nil
}

func (s *DefaultExecutorService) ListExecutors(ctx context.Context, criteria models.ExecutorSearchCriteria) ([]models.Executor, error) {
	criteria.Specialization = strings.TrimSpace(criteria.Specialization)
	criteria.City = strings.TrimSpace(criteria.City)

	executors, err := s.Repo.Search(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to list executors: %w", err)
	}
	if executors == nil {
		executors = []models.Executor{}
	}
	return executors, nil
}

func (s *DefaultExecutorService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
