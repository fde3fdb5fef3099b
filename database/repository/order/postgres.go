package orderRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace/models"
	"marketplace/utils"

	"github.com/jackc/pgx/v5"
)

const orderColumns = `id, client_id, executor_id, title, description, address, order_date, start_time,
	estimated_duration, price, status, reminder_sent_at, created_at, updated_at`

func scanOrder(row pgx.Row) (*models.Order, error) {
	var (
		o   models.Order
		day time.Time
	)
	err := row.Scan(&o.ID, &o.ClientID, &o.ExecutorID, &o.Title, &o.Description, &o.Address,
		&day, &o.Time, &o.EstimatedDuration, &o.Price, &o.Status, &o.ReminderSentAt,
		&o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	o.Date = day.Format(time.DateOnly)
	return &o, nil
}

func collectOrders(rows pgx.Rows) ([]models.Order, error) {
	defer rows.Close()

	var out []models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func (r *postgresOrderRepo) Create(ctx context.Context, o *models.Order) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO orders (client_id, executor_id, title, description, address, order_date, start_time,
		                     estimated_duration, price, status, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6::date,$7,$8,$9,$10,$11,$12)
		 RETURNING id`,
		o.ClientID, o.ExecutorID, o.Title, o.Description, o.Address, o.Date, o.Time,
		o.EstimatedDuration, o.Price, o.Status, o.CreatedAt, o.UpdatedAt,
	).Scan(&o.ID)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *postgresOrderRepo) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	o, err := scanOrder(r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order %d: %w", id, err)
	}
	return o, nil
}

func (r *postgresOrderRepo) ListByExecutorAndDate(ctx context.Context, executorID int64, date string, statuses []string) ([]models.Order, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+orderColumns+`
		 FROM orders
		 WHERE executor_id = $1 AND order_date = $2::date
		   AND ($3::text[] IS NULL OR cardinality($3::text[]) = 0 OR status = ANY($3::text[]))
		 ORDER BY start_time, id`,
		executorID, date, statuses,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return collectOrders(rows)
}

func (r *postgresOrderRepo) ListByClient(ctx context.Context, clientID int64) ([]models.Order, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE client_id = $1 ORDER BY order_date DESC, start_time DESC`,
		clientID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list client orders: %w", err)
	}
	return collectOrders(rows)
}

func (r *postgresOrderRepo) UpdateStatus(ctx context.Context, id int64, from, to string, at time.Time) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`,
		to, at, id, from,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update order status: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *postgresOrderRepo) MarkReminderSent(ctx context.Context, id int64, at time.Time) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE orders SET reminder_sent_at = $1 WHERE id = $2 AND reminder_sent_at IS NULL`,
		at, id,
	)
	if err != nil {
		return false, fmt.Errorf("failed to mark reminder: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
