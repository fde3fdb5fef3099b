package schedule

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"marketplace/models"
	"marketplace/services/availability"
	"marketplace/utils"

	"go.uber.org/zap"
)

// GetWeeklyHours returns the executor's stored days ordered Monday first.
// Days that were never configured are not included.
func (s *DefaultScheduleService) GetWeeklyHours(ctx context.Context, executorID int64) ([]models.WeeklyHours, error) {
	if executorID <= 0 {
		return nil, utils.NewValidationError("executorId must be a positive integer")
	}
	if err := s.ensureExecutor(ctx, executorID); err != nil {
		return nil, err
	}
	return s.week(ctx, executorID)
}

// GetDay returns the row for one day of the week, or nil if none is stored.
// Without a cache it reads the single row; with one it serves the cached week.
func (s *DefaultScheduleService) GetDay(ctx context.Context, executorID int64, dayOfWeek int) (*models.WeeklyHours, error) {
	if s.Cache == nil {
		row, err := s.Repo.GetByExecutorAndDay(ctx, executorID, dayOfWeek)
		if errors.Is(err, utils.ErrNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load working hours: %w", err)
		}
		return row, nil
	}

	rows, err := s.week(ctx, executorID)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if rows[i].DayOfWeek == dayOfWeek {
			return &rows[i], nil
		}
	}
	return nil, nil
}

// SetWeeklyHours validates and upserts the given days, leaving other days untouched.
func (s *DefaultScheduleService) SetWeeklyHours(ctx context.Context, executorID int64, rows []models.WeeklyHours) ([]models.WeeklyHours, error) {
	if executorID <= 0 {
		return nil, utils.NewValidationError("executorId must be a positive integer")
	}
	if len(rows) == 0 || len(rows) > 7 {
		return nil, utils.NewValidationError("between 1 and 7 days are required")
	}
	if err := s.ensureExecutor(ctx, executorID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	seen := make(map[int]bool, len(rows))
	clean := make([]models.WeeklyHours, 0, len(rows))
	for _, row := range rows {
		row, err := normalizeRow(row)
		if err != nil {
			return nil, err
		}
		if seen[row.DayOfWeek] {
			return nil, utils.NewValidationError("dayOfWeek %d is listed more than once", row.DayOfWeek)
		}
		seen[row.DayOfWeek] = true

		row.ExecutorID = executorID
		row.UpdatedAt = now
		clean = append(clean, row)
	}

	if err := s.Repo.Upsert(ctx, clean); err != nil {
		return nil, fmt.Errorf("failed to save working hours: %w", err)
	}
	if s.Cache != nil {
		if err := s.Cache.Invalidate(ctx, executorID); err != nil {
			s.Logger.Warn("Failed to invalidate weekly hours cache", zap.Int64("executorID", executorID), zap.Error(err))
		}
	}

	s.Logger.Info("Weekly hours updated", zap.Int64("executorID", executorID), zap.Int("days", len(clean)))
	return s.week(ctx, executorID)
}

// normalizeRow validates a row and rewrites its clock times as zero-padded HH:MM.
func normalizeRow(row models.WeeklyHours) (models.WeeklyHours, error) {
	if row.DayOfWeek < 0 || row.DayOfWeek > 6 {
		return row, utils.NewValidationError("dayOfWeek %d out of range, want 0 (Monday) to 6 (Sunday)", row.DayOfWeek)
	}
	if !row.IsWorking && row.StartTime == "" && row.EndTime == "" {
		return row, nil
	}
	start, err := availability.ParseClock(row.StartTime)
	if err != nil {
		return row, utils.NewValidationError("day %d: startTime: %v", row.DayOfWeek, err)
	}
	end, err := availability.ParseClock(row.EndTime)
	if err != nil {
		return row, utils.NewValidationError("day %d: endTime: %v", row.DayOfWeek, err)
	}
	if row.IsWorking && start >= end {
		return row, utils.NewValidationError("day %d: startTime must be before endTime", row.DayOfWeek)
	}
	row.StartTime = availability.FormatClock(start)
	row.EndTime = availability.FormatClock(end)
	return row, nil
}

func (s *DefaultScheduleService) ensureExecutor(ctx context.Context, executorID int64) error {
	if s.Executors == nil {
		return nil
	}
	if _, err := s.Executors.GetByID(ctx, executorID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return &utils.NotFoundError{Entity: "executor", ID: executorID}
		}
		return fmt.Errorf("failed to load executor: %w", err)
	}
	return nil
}

// week reads through the cache. Cache errors are logged and the repository answers instead.
func (s *DefaultScheduleService) week(ctx context.Context, executorID int64) ([]models.WeeklyHours, error) {
	var (
		generation int64
		cacheable  bool
	)
	if s.Cache != nil {
		rows, ok, err := s.Cache.Get(ctx, executorID)
		if err != nil {
			s.Logger.Warn("Weekly hours cache read failed", zap.Int64("executorID", executorID), zap.Error(err))
		} else if ok {
			return rows, nil
		}
		if generation, err = s.Cache.Generation(ctx, executorID); err == nil {
			cacheable = true
		} else {
			s.Logger.Warn("Weekly hours cache generation read failed", zap.Int64("executorID", executorID), zap.Error(err))
		}
	}

	rows, err := s.Repo.ListByExecutor(ctx, executorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load working hours: %w", err)
	}
	if rows == nil {
		rows = []models.WeeklyHours{}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].DayOfWeek < rows[j].DayOfWeek })

	if cacheable {
		if err := s.Cache.Set(ctx, executorID, generation, rows); err != nil {
			s.Logger.Warn("Weekly hours cache write failed", zap.Int64("executorID", executorID), zap.Error(err))
		}
	}
	return rows, nil
}
