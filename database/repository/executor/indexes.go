package executorRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the executors collection relies on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true).SetName("unique_id")},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("unique_email")},
		{Keys: bson.D{{Key: "specialization", Value: 1}, {Key: "city", Value: 1}}, Options: options.Index().SetName("specialization_city_idx")},
	}

	if _, err := db.Collection("executors").Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create executor indexes: %w", err)
	}

	lockTTL := mongo.IndexModel{
		Keys:    bson.D{{Key: "expiresAt", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0).SetName("expires_at_ttl"),
	}
	if _, err := db.Collection(scheduleLocksCollection).Indexes().CreateOne(ctx, lockTTL); err != nil {
		return fmt.Errorf("failed to create schedule lock indexes: %w", err)
	}
	return nil
}
