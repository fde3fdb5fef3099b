package calendarRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the calendar_events collection.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true).SetName("unique_id")},
		// Primary query pattern: one executor, one day.
		{Keys: bson.D{{Key: "executorId", Value: 1}, {Key: "date", Value: 1}}, Options: options.Index().SetName("executor_date_idx")},
	}

	if _, err := db.Collection("calendar_events").Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create calendar event indexes: %w", err)
	}
	return nil
}
