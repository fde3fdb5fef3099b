package workingHoursRepo

import (
	"context"

	"marketplace/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
)

// WorkingHoursRepository stores one WeeklyHours row per (executor, day of week).
type WorkingHoursRepository interface {
	// GetByExecutorAndDay returns utils.ErrNotFound when the day has no row.
	GetByExecutorAndDay(ctx context.Context, executorID int64, dayOfWeek int) (*models.WeeklyHours, error)
	// ListByExecutor returns the stored rows ordered by day.
	ListByExecutor(ctx context.Context, executorID int64) ([]models.WeeklyHours, error)
	// Upsert writes all rows atomically, replacing existing rows for the same days.
	Upsert(ctx context.Context, rows []models.WeeklyHours) error
}

type postgresWorkingHoursRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresWorkingHoursRepo(pool *pgxpool.Pool) WorkingHoursRepository {
	return &postgresWorkingHoursRepo{pool: pool}
}

type mongoWorkingHoursRepo struct {
	coll *mongo.Collection
}

func NewMongoWorkingHoursRepo(db *mongo.Database) WorkingHoursRepository {
	return &mongoWorkingHoursRepo{coll: db.Collection("weekly_hours")}
}
