package executorRepo

import (
	"context"

	"marketplace/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
)

// ExecutorRepository defines methods for executor data access.
type ExecutorRepository interface {
	// Create inserts a new executor and sets its ID.
	Create(ctx context.Context, executor *models.Executor) error
	// GetByID retrieves an executor by its unique ID.
	GetByID(ctx context.Context, id int64) (*models.Executor, error)
	// GetByEmail retrieves an executor by email address.
	GetByEmail(ctx context.Context, email string) (*models.Executor, error)
	// Search lists executors matching the criteria, newest first.
	Search(ctx context.Context, criteria models.ExecutorSearchCriteria) ([]models.Executor, error)
}

type postgresExecutorRepo struct {
	pool *pgxpool.Pool
}

// NewPostgresExecutorRepo constructs a Postgres ExecutorRepository.
func NewPostgresExecutorRepo(pool *pgxpool.Pool) ExecutorRepository {
	return &postgresExecutorRepo{pool: pool}
}

type mongoExecutorRepo struct {
	db   *mongo.Database
	coll *mongo.Collection
}

// NewMongoExecutorRepo constructs a MongoDB ExecutorRepository.
func NewMongoExecutorRepo(db *mongo.Database) ExecutorRepository {
	return &mongoExecutorRepo{db: db, coll: db.Collection("executors")}
}
