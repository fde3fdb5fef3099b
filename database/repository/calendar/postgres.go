package calendarRepo

import (
	"context"
	"fmt"
	"time"

	"marketplace/models"
	"marketplace/utils"
)

func (r *postgresEventRepo) Create(ctx context.Context, ev *models.CalendarEvent) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO calendar_events (executor_id, title, description, event_date, start_time, duration, type, created_at)
		 VALUES ($1,$2,$3,$4::date,$5,$6,$7,$8)
		 RETURNING id`,
		ev.ExecutorID, ev.Title, ev.Description, ev.Date, ev.Time, ev.Duration, ev.Type, ev.CreatedAt,
	).Scan(&ev.ID)
	if err != nil {
		return fmt.Errorf("failed to create calendar event: %w", err)
	}
	return nil
}

func (r *postgresEventRepo) ListByExecutorAndDate(ctx context.Context, executorID int64, date string) ([]models.CalendarEvent, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, executor_id, title, description, event_date, start_time, duration, type, created_at
		 FROM calendar_events
		 WHERE executor_id = $1 AND event_date = $2::date
		 ORDER BY start_time, id`, executorID, date,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar events: %w", err)
	}
	defer rows.Close()

	var out []models.CalendarEvent
	for rows.Next() {
		var (
			ev  models.CalendarEvent
			day time.Time
		)
		if err := rows.Scan(&ev.ID, &ev.ExecutorID, &ev.Title, &ev.Description, &day,
			&ev.Time, &ev.Duration, &ev.Type, &ev.CreatedAt); err != nil {
			return nil, err
		}
		ev.Date = day.Format(time.DateOnly)
		out = append(out, ev)
	}
	return out, rows.Err()
}

func (r *postgresEventRepo) Delete(ctx context.Context, executorID, eventID int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM calendar_events WHERE id = $1 AND executor_id = $2`, eventID, executorID)
	if err != nil {
		return fmt.Errorf("failed to delete calendar event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return utils.ErrNotFound
	}
	return nil
}
