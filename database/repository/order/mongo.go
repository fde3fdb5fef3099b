package orderRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace/database"
	"marketplace/models"
	"marketplace/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoOrderRepo) Create(ctx context.Context, o *models.Order) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	id, err := database.NextSequence(ctx, r.db, "orders")
	if err != nil {
		return err
	}
	o.ID = id
	if _, err := r.coll.InsertOne(ctx, o); err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *mongoOrderRepo) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var o models.Order
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to fetch order %d: %w", id, utils.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order %d: %w", id, err)
	}
	return &o, nil
}

func (r *mongoOrderRepo) find(ctx context.Context, filter bson.M, sort bson.D) ([]models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Order
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return out, nil
}

func (r *mongoOrderRepo) ListByExecutorAndDate(ctx context.Context, executorID int64, date string, statuses []string) ([]models.Order, error) {
	filter := bson.M{"executorId": executorID, "date": date}
	if len(statuses) > 0 {
		filter["status"] = bson.M{"$in": statuses}
	}
	return r.find(ctx, filter, bson.D{{Key: "time", Value: 1}, {Key: "id", Value: 1}})
}

func (r *mongoOrderRepo) ListByClient(ctx context.Context, clientID int64) ([]models.Order, error) {
	return r.find(ctx, bson.M{"clientId": clientID}, bson.D{{Key: "date", Value: -1}, {Key: "time", Value: -1}})
}

func (r *mongoOrderRepo) UpdateStatus(ctx context.Context, id int64, from, to string, at time.Time) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "status": from},
		bson.M{"$set": bson.M{"status": to, "updatedAt": at}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to update order status: %w", err)
	}
	return res.MatchedCount == 1, nil
}

func (r *mongoOrderRepo) MarkReminderSent(ctx context.Context, id int64, at time.Time) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "reminderSentAt": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"reminderSentAt": at}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to mark reminder: %w", err)
	}
	return res.MatchedCount == 1, nil
}
