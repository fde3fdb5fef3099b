package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"marketplace/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeOrderReminder = "order:reminder"

// NewOrderReminderTask builds a reminder task that fires at fireAt. The task ID
// is derived from the order so an order is never queued twice.
func NewOrderReminderTask(payload models.OrderReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeOrderReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID(fmt.Sprintf("order-reminder-%d", payload.OrderID)),
		asynq.MaxRetry(3),
	}
	return task, opts, nil
}

// ReminderScheduler queues the reminder of a confirmed order.
type ReminderScheduler interface {
	ScheduleOrderReminder(ctx context.Context, order *models.Order, startsAt time.Time) error
}

// Enqueuer is the part of *asynq.Client the scheduler needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AsynqReminderScheduler fires reminders Lead before the order starts.
type AsynqReminderScheduler struct {
	Client Enqueuer
	Lead   time.Duration
	Now    func() time.Time
	Logger *zap.Logger
}

func (s *AsynqReminderScheduler) ScheduleOrderReminder(ctx context.Context, order *models.Order, startsAt time.Time) error {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	if !startsAt.After(now) {
		s.Logger.Debug("Order already started, no reminder queued", zap.Int64("orderID", order.ID))
		return nil
	}

	fireAt := startsAt.Add(-s.Lead)
	if fireAt.Before(now) {
		fireAt = now
	}

	task, opts, err := NewOrderReminderTask(models.OrderReminderPayload{
		OrderID:    order.ID,
		ExecutorID: order.ExecutorID,
		ClientID:   order.ClientID,
		Title:      order.Title,
		StartsAt:   startsAt.Format(time.RFC3339),
	}, fireAt)
	if err != nil {
		return fmt.Errorf("failed to build reminder task: %w", err)
	}

	info, err := s.Client.EnqueueContext(ctx, task, opts...)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		s.Logger.Debug("Reminder already queued", zap.Int64("orderID", order.ID))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}

	s.Logger.Info("Order reminder queued",
		zap.Int64("orderID", order.ID),
		zap.String("taskID", info.ID),
		zap.Time("fireAt", fireAt),
	)
	return nil
}
