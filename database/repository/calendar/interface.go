package calendarRepo

import (
	"context"

	"marketplace/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
)

// EventRepository defines methods to interact with executor calendar events.
type EventRepository interface {
	Create(ctx context.Context, event *models.CalendarEvent) error
	// ListByExecutorAndDate returns the events of one day ordered by start time.
	ListByExecutorAndDate(ctx context.Context, executorID int64, date string) ([]models.CalendarEvent, error)
	// Delete removes an event owned by the executor; utils.ErrNotFound otherwise.
	Delete(ctx context.Context, executorID, eventID int64) error
}

type postgresEventRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresEventRepo(pool *pgxpool.Pool) EventRepository {
	return &postgresEventRepo{pool: pool}
}

type mongoEventRepo struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewMongoEventRepo(db *mongo.Database) EventRepository {
	return &mongoEventRepo{db: db, coll: db.Collection("calendar_events")}
}
