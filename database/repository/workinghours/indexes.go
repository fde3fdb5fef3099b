package workingHoursRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes enforces one row per (executor, day of week).
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := db.Collection("weekly_hours").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "executorId", Value: 1}, {Key: "dayOfWeek", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("executor_day_unique"),
	})
	if err != nil {
		return fmt.Errorf("failed to create weekly_hours indexes: %w", err)
	}
	return nil
}
