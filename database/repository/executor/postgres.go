package executorRepo

import (
	"context"
	"errors"
	"fmt"

	"marketplace/models"
	"marketplace/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the SQLSTATE Postgres reports for a unique index clash.
const uniqueViolation = "23505"

const executorColumns = `id, name, email, phone, specialization, city, hourly_rate, created_at, updated_at`

// searchExecutorsSQL compares filters case-insensitively but literally, so
// '%' and '_' in user input match only themselves.
const searchExecutorsSQL = `SELECT ` + executorColumns + `
 FROM executors
 WHERE ($1 = '' OR lower(specialization) = lower($1))
   AND ($2 = '' OR lower(city) = lower($2))
 ORDER BY created_at DESC, id DESC`

func scanExecutor(row pgx.Row) (*models.Executor, error) {
	e := &models.Executor{}
	err := row.Scan(&e.ID, &e.Name, &e.Email, &e.Phone, &e.Specialization, &e.City,
		&e.HourlyRate, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *postgresExecutorRepo) Create(ctx context.Context, e *models.Executor) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO executors (name, email, phone, specialization, city, hourly_rate, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		 RETURNING id`,
		e.Name, e.Email, e.Phone, e.Specialization, e.City, e.HourlyRate, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("executor email %s: %w", e.Email, utils.ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("failed to create executor: %w", err)
	}
	return nil
}

func (r *postgresExecutorRepo) GetByID(ctx context.Context, id int64) (*models.Executor, error) {
	e, err := scanExecutor(r.pool.QueryRow(ctx,
		`SELECT `+executorColumns+` FROM executors WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch executor %d: %w", id, err)
	}
	return e, nil
}

func (r *postgresExecutorRepo) GetByEmail(ctx context.Context, email string) (*models.Executor, error) {
	e, err := scanExecutor(r.pool.QueryRow(ctx,
		`SELECT `+executorColumns+` FROM executors WHERE lower(email) = lower($1)`, email))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch executor by email: %w", err)
	}
	return e, nil
}

func (r *postgresExecutorRepo) Search(ctx context.Context, c models.ExecutorSearchCriteria) ([]models.Executor, error) {
	rows, err := r.pool.Query(ctx, searchExecutorsSQL, c.Specialization, c.City)
	if err != nil {
		return nil, fmt.Errorf("failed to search executors: %w", err)
	}
	defer rows.Close()

	var out []models.Executor
	for rows.Next() {
		e, err := scanExecutor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}
