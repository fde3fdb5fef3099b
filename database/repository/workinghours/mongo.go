package workingHoursRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace/models"
	"marketplace/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoWorkingHoursRepo) GetByExecutorAndDay(ctx context.Context, executorID int64, day int) (*models.WeeklyHours, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var h models.WeeklyHours
	err := r.coll.FindOne(ctx, bson.M{"executorId": executorID, "dayOfWeek": day}).Decode(&h)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch working hours: %w", err)
	}
	return &h, nil
}

func (r *mongoWorkingHoursRepo) ListByExecutor(ctx context.Context, executorID int64) ([]models.WeeklyHours, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "dayOfWeek", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"executorId": executorID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list working hours: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.WeeklyHours
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode working hours: %w", err)
	}
	return out, nil
}

// Upsert uses one ordered bulk write; the unique (executorId, dayOfWeek) index
// keeps a single row per day even under concurrent edits.
func (r *mongoWorkingHoursRepo) Upsert(ctx context.Context, hours []models.WeeklyHours) error {
	if len(hours) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	writes := make([]mongo.WriteModel, 0, len(hours))
	for _, h := range hours {
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"executorId": h.ExecutorID, "dayOfWeek": h.DayOfWeek}).
			SetReplacement(h).
			SetUpsert(true))
	}

	if _, err := r.coll.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(true)); err != nil {
		return fmt.Errorf("failed to upsert working hours: %w", err)
	}
	return nil
}
