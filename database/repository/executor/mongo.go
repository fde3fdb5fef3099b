package executorRepo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"marketplace/database"
	"marketplace/models"
	"marketplace/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoExecutorRepo) Create(ctx context.Context, e *models.Executor) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	id, err := database.NextSequence(ctx, r.db, "executors")
	if err != nil {
		return err
	}
	e.ID = id
	if _, err := r.coll.InsertOne(ctx, e); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("executor email %s: %w", e.Email, utils.ErrDuplicate)
		}
		return fmt.Errorf("failed to create executor: %w", err)
	}
	return nil
}

func (r *mongoExecutorRepo) findOne(ctx context.Context, filter bson.M) (*models.Executor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var e models.Executor
	err := r.coll.FindOne(ctx, filter).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *mongoExecutorRepo) GetByID(ctx context.Context, id int64) (*models.Executor, error) {
	e, err := r.findOne(ctx, bson.M{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch executor %d: %w", id, err)
	}
	return e, nil
}

func (r *mongoExecutorRepo) GetByEmail(ctx context.Context, email string) (*models.Executor, error) {
	filter := bson.M{"email": bson.M{"$regex": "^" + regexp.QuoteMeta(email) + "$", "$options": "i"}}
	e, err := r.findOne(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch executor by email: %w", err)
	}
	return e, nil
}

func (r *mongoExecutorRepo) Search(ctx context.Context, c models.ExecutorSearchCriteria) ([]models.Executor, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if c.Specialization != "" {
		filter["specialization"] = bson.M{"$regex": "^" + regexp.QuoteMeta(c.Specialization) + "$", "$options": "i"}
	}
	if c.City != "" {
		filter["city"] = bson.M{"$regex": "^" + regexp.QuoteMeta(c.City) + "$", "$options": "i"}
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "id", Value: -1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search executors: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Executor
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode executors: %w", err)
	}
	return out, nil
}
