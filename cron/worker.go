package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	orderRepo "marketplace/database/repository/order"
	"marketplace/models"
	"marketplace/services/tasks"
	"marketplace/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ReminderWorker consumes order reminders from the asynq queue.
type ReminderWorker struct {
	srv    *asynq.Server
	orders orderRepo.OrderRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewReminderWorker(redisOpt asynq.RedisClientOpt, orders orderRepo.OrderRepository, logger *zap.Logger) *ReminderWorker {
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: logger.Sugar(),
		},
	)
	return &ReminderWorker{srv: srv, orders: orders, logger: logger, now: time.Now}
}

const (
	startAttempts = 5
	startBackoff  = 2 * time.Second
)

// Start waits for the queue's Redis to answer ping, then launches the worker
// in the background. asynq itself starts without checking the connection.
func (w *ReminderWorker) Start(ctx context.Context, ping func(context.Context) error) error {
	if err := waitForQueue(ctx, ping, startAttempts, startBackoff, w.logger); err != nil {
		return err
	}

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeOrderReminder, w.HandleOrderReminder)
	if err := w.srv.Start(mux); err != nil {
		return fmt.Errorf("reminder worker did not start: %w", err)
	}
	w.logger.Info("Reminder worker started")
	return nil
}

// waitForQueue pings until success, backing off linearly between attempts.
func waitForQueue(ctx context.Context, ping func(context.Context) error, attempts int, backoff time.Duration, logger *zap.Logger) error {
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = ping(ctx); err == nil {
			return nil
		}
		logger.Warn("Reminder queue unreachable",
			zap.Int("attempt", attempt),
			zap.Int("maxAttempts", attempts),
			zap.Error(err),
		)
		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * backoff):
		}
	}
	return fmt.Errorf("reminder queue unreachable after %d attempts: %w", attempts, err)
}

func (w *ReminderWorker) Shutdown() {
	w.srv.Shutdown()
}

// HandleOrderReminder marks a still-confirmed order as reminded and logs it.
// Cancelled, started and already reminded orders are acknowledged without action.
func (w *ReminderWorker) HandleOrderReminder(ctx context.Context, task *asynq.Task) error {
	var p models.OrderReminderPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		w.logger.Error("Invalid reminder payload", zap.Error(err))
		return fmt.Errorf("invalid payload: %v: %w", err, asynq.SkipRetry)
	}

	order, err := w.orders.GetByID(ctx, p.OrderID)
	if errors.Is(err, utils.ErrNotFound) {
		w.logger.Warn("Reminder for unknown order dropped", zap.Int64("orderID", p.OrderID))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load order %d: %w", p.OrderID, err)
	}
	if order.Status != models.OrderConfirmed {
		w.logger.Info("Reminder skipped, order no longer confirmed",
			zap.Int64("orderID", order.ID),
			zap.String("status", order.Status),
		)
		return nil
	}

	marked, err := w.orders.MarkReminderSent(ctx, order.ID, w.now().UTC())
	if err != nil {
		return fmt.Errorf("failed to mark reminder for order %d: %w", order.ID, err)
	}
	if !marked {
		w.logger.Debug("Reminder already sent", zap.Int64("orderID", order.ID))
		return nil
	}

	w.logger.Info("Order reminder",
		zap.Int64("orderID", order.ID),
		zap.Int64("executorID", order.ExecutorID),
		zap.Int64("clientID", order.ClientID),
		zap.String("title", order.Title),
		zap.String("startsAt", p.StartsAt),
	)
	return nil
}
