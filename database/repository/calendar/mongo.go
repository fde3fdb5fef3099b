package calendarRepo

import (
	"context"
	"fmt"
	"time"

	"marketplace/database"
	"marketplace/models"
	"marketplace/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoEventRepo) Create(ctx context.Context, ev *models.CalendarEvent) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	id, err := database.NextSequence(ctx, r.db, "calendar_events")
	if err != nil {
		return err
	}
	ev.ID = id
	if _, err := r.coll.InsertOne(ctx, ev); err != nil {
		return fmt.Errorf("failed to create calendar event: %w", err)
	}
	return nil
}

func (r *mongoEventRepo) ListByExecutorAndDate(ctx context.Context, executorID int64, date string) ([]models.CalendarEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "time", Value: 1}, {Key: "id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"executorId": executorID, "date": date}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar events: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.CalendarEvent
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode calendar events: %w", err)
	}
	return out, nil
}

func (r *mongoEventRepo) Delete(ctx context.Context, executorID, eventID int64) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": eventID, "executorId": executorID})
	if err != nil {
		return fmt.Errorf("failed to delete calendar event: %w", err)
	}
	if res.DeletedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}
