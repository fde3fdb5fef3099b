package orderRepo

import (
	"context"
	"time"

	"marketplace/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id int64) (*models.Order, error)
	// ListByExecutorAndDate returns one day's orders ordered by start time.
	// An empty statuses slice matches every status.
	ListByExecutorAndDate(ctx context.Context, executorID int64, date string, statuses []string) ([]models.Order, error)
	ListByClient(ctx context.Context, clientID int64) ([]models.Order, error)
	// UpdateStatus moves the order from one status to another. It reports false
	// when the order is missing or no longer in the expected status.
	UpdateStatus(ctx context.Context, id int64, from, to string, at time.Time) (bool, error)
	// MarkReminderSent stamps the reminder once; false if it was already stamped.
	MarkReminderSent(ctx context.Context, id int64, at time.Time) (bool, error)
}

type postgresOrderRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresOrderRepo(pool *pgxpool.Pool) OrderRepository {
	return &postgresOrderRepo{pool: pool}
}

type mongoOrderRepo struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewMongoOrderRepo(db *mongo.Database) OrderRepository {
	return &mongoOrderRepo{db: db, coll: db.Collection("orders")}
}
