package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"marketplace/models"

	"github.com/go-redis/redis/v8"
)

// WeekCache holds an executor's full set of WeeklyHours rows.
//
// Every Invalidate bumps a per-executor generation. A reader takes the
// generation before loading from the store and passes it to Set, which drops
// the write if an invalidation happened in between.
type WeekCache interface {
	// Get reports ok=false on a miss.
	Get(ctx context.Context, executorID int64) (rows []models.WeeklyHours, ok bool, err error)
	Generation(ctx context.Context, executorID int64) (int64, error)
	Set(ctx context.Context, executorID int64, generation int64, rows []models.WeeklyHours) error
	Invalidate(ctx context.Context, executorID int64) error
}

type redisWeekCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisWeekCache stores weeks as JSON under "weekly_hours:<executorID>".
func NewRedisWeekCache(client *redis.Client, ttl time.Duration) WeekCache {
	return &redisWeekCache{client: client, ttl: ttl}
}

func weekKey(executorID int64) string {
	return fmt.Sprintf("weekly_hours:%d", executorID)
}

func generationKey(executorID int64) string {
	return fmt.Sprintf("weekly_hours_gen:%d", executorID)
}

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readGeneration(ctx context.Context, c stringGetter, executorID int64) (int64, error) {
	gen, err := c.Get(ctx, generationKey(executorID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *redisWeekCache) Generation(ctx context.Context, executorID int64) (int64, error) {
	return readGeneration(ctx, c.client, executorID)
}

func (c *redisWeekCache) Get(ctx context.Context, executorID int64) ([]models.WeeklyHours, bool, error) {
	data, err := c.client.Get(ctx, weekKey(executorID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var rows []models.WeeklyHours
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, false, err
	}
	return rows, true, nil
}

func (c *redisWeekCache) Set(ctx context.Context, executorID int64, generation int64, rows []models.WeeklyHours) error {
	data, err := json.Marshal(rows)
	if err != nil {
		return err
	}
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readGeneration(ctx, tx, executorID)
		if err != nil {
			return err
		}
		if current != generation {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, weekKey(executorID), data, c.ttl)
			return nil
		})
		return err
	}, generationKey(executorID))
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

func (c *redisWeekCache) Invalidate(ctx context.Context, executorID int64) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey(executorID))
		pipe.Del(ctx, weekKey(executorID))
		return nil
	})
	return err
}
