package repository

import (
	"context"

	calendarRepo "marketplace/database/repository/calendar"
	executorRepo "marketplace/database/repository/executor"
	orderRepo "marketplace/database/repository/order"
	workingHoursRepo "marketplace/database/repository/workinghours"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
)

// Re-export the repository interfaces so wiring code needs one import.
type (
	ExecutorRepository     = executorRepo.ExecutorRepository
	WorkingHoursRepository = workingHoursRepo.WorkingHoursRepository
	EventRepository        = calendarRepo.EventRepository
	OrderRepository        = orderRepo.OrderRepository
	ScheduleLocker         = executorRepo.ScheduleLocker
)

// Set holds one repository per entity, all backed by the same store.
type Set struct {
	Executors    ExecutorRepository
	WorkingHours WorkingHoursRepository
	Events       EventRepository
	Orders       OrderRepository
	Locks        ScheduleLocker
}

// NewPostgresSet builds every repository on the shared pool.
func NewPostgresSet(pool *pgxpool.Pool) Set {
	return Set{
		Executors:    executorRepo.NewPostgresExecutorRepo(pool),
		WorkingHours: workingHoursRepo.NewPostgresWorkingHoursRepo(pool),
		Events:       calendarRepo.NewPostgresEventRepo(pool),
		Orders:       orderRepo.NewPostgresOrderRepo(pool),
		Locks:        executorRepo.NewPostgresScheduleLocker(pool),
	}
}

// NewMongoSet builds every repository on one database of the shared client.
func NewMongoSet(db *mongo.Database) Set {
	return Set{
		Executors:    executorRepo.NewMongoExecutorRepo(db),
		WorkingHours: workingHoursRepo.NewMongoWorkingHoursRepo(db),
		Events:       calendarRepo.NewMongoEventRepo(db),
		Orders:       orderRepo.NewMongoOrderRepo(db),
		Locks:        executorRepo.NewMongoScheduleLocker(db),
	}
}

// EnsureMongoIndexes creates the indexes of every collection.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	for _, ensure := range []func(context.Context, *mongo.Database) error{
		executorRepo.EnsureIndexes,
		workingHoursRepo.EnsureIndexes,
		calendarRepo.EnsureIndexes,
		orderRepo.EnsureIndexes,
	} {
		if err := ensure(ctx, db); err != nil {
			return err
		}
	}
	return nil
}
