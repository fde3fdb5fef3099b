package executorRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ScheduleLocker serialises changes to one executor's booked time across
// every instance sharing the store. fn runs while the lock is held.
type ScheduleLocker interface {
	WithScheduleLock(ctx context.Context, executorID int64, fn func(ctx context.Context) error) error
}

type postgresScheduleLocker struct {
	pool *pgxpool.Pool
}

// NewPostgresScheduleLocker locks with a transaction-scoped advisory lock keyed
// by executor id. The lock is released when the transaction ends.
func NewPostgresScheduleLocker(pool *pgxpool.Pool) ScheduleLocker {
	return &postgresScheduleLocker{pool: pool}
}

func (l *postgresScheduleLocker) WithScheduleLock(ctx context.Context, executorID int64, fn func(ctx context.Context) error) error {
	return pgx.BeginFunc(ctx, l.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1::bigint)`, executorID); err != nil {
			return fmt.Errorf("failed to lock schedule of executor %d: %w", executorID, err)
		}
		return fn(ctx)
	})
}

const (
	scheduleLocksCollection = "schedule_locks"
	scheduleLockTTL         = 30 * time.Second
	scheduleLockRetry       = 50 * time.Millisecond
)

type mongoScheduleLock struct {
	ExecutorID int64     `bson:"_id"`
	Owner      string    `bson:"owner"`
	ExpiresAt  time.Time `bson:"expiresAt"`
}

type mongoScheduleLocker struct {
	coll *mongo.Collection
}

// NewMongoScheduleLocker locks by inserting a document keyed by executor id.
// A holder that dies leaves a lock that others break once it has expired.
func NewMongoScheduleLocker(db *mongo.Database) ScheduleLocker {
	return &mongoScheduleLocker{coll: db.Collection(scheduleLocksCollection)}
}

func (l *mongoScheduleLocker) WithScheduleLock(ctx context.Context, executorID int64, fn func(ctx context.Context) error) error {
	owner := uuid.NewString()
	for {
		lock := mongoScheduleLock{ExecutorID: executorID, Owner: owner, ExpiresAt: time.Now().Add(scheduleLockTTL)}
		_, err := l.coll.InsertOne(ctx, lock)
		if err == nil {
			break
		}
		if !mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("failed to lock schedule of executor %d: %w", executorID, err)
		}
		if _, err := l.coll.DeleteOne(ctx, bson.M{"_id": executorID, "expiresAt": bson.M{"$lt": time.Now()}}); err != nil {
			return fmt.Errorf("failed to clear expired schedule lock: %w", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(scheduleLockRetry):
		}
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_, _ = l.coll.DeleteOne(ctx, bson.M{"_id": executorID, "owner": owner})
	}()
	return fn(ctx)
}
