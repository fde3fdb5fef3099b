package workingHoursRepo

import (
	"context"
	"errors"
	"fmt"

	"marketplace/models"
	"marketplace/utils"

	"github.com/jackc/pgx/v5"
)

func (r *postgresWorkingHoursRepo) GetByExecutorAndDay(ctx context.Context, executorID int64, day int) (*models.WeeklyHours, error) {
	h := &models.WeeklyHours{}
	err := r.pool.QueryRow(ctx,
		`SELECT executor_id, day_of_week, start_time, end_time, is_working, updated_at
		 FROM weekly_hours WHERE executor_id = $1 AND day_of_week = $2`,
		executorID, day,
	).Scan(&h.ExecutorID, &h.DayOfWeek, &h.StartTime, &h.EndTime, &h.IsWorking, &h.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch working hours: %w", err)
	}
	return h, nil
}

func (r *postgresWorkingHoursRepo) ListByExecutor(ctx context.Context, executorID int64) ([]models.WeeklyHours, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT executor_id, day_of_week, start_time, end_time, is_working, updated_at
		 FROM weekly_hours WHERE executor_id = $1
		 ORDER BY day_of_week`, executorID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list working hours: %w", err)
	}
	defer rows.Close()

	var out []models.WeeklyHours
	for rows.Next() {
		var h models.WeeklyHours
		if err := rows.Scan(&h.ExecutorID, &h.DayOfWeek, &h.StartTime, &h.EndTime, &h.IsWorking, &h.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *postgresWorkingHoursRepo) Upsert(ctx context.Context, hours []models.WeeklyHours) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, h := range hours {
		batch.Queue(
			`INSERT INTO weekly_hours (executor_id, day_of_week, start_time, end_time, is_working, updated_at)
			 VALUES ($1,$2,$3,$4,$5,$6)
			 ON CONFLICT (executor_id, day_of_week)
			 DO UPDATE SET start_time = EXCLUDED.start_time,
			               end_time   = EXCLUDED.end_time,
			               is_working = EXCLUDED.is_working,
			               updated_at = EXCLUDED.updated_at`,
			h.ExecutorID, h.DayOfWeek, h.StartTime, h.EndTime, h.IsWorking, h.UpdatedAt,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to upsert working hours: %w", err)
	}

	return tx.Commit(ctx)
}
