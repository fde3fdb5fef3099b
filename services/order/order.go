package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/models"
	"marketplace/services/availability"
	"marketplace/utils"

	"go.uber.org/zap"
)

// CreateOrder places a pending order after checking the slot fits the
// executor's working hours and clashes with nothing already booked.
func (s *DefaultOrderService) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error) {
	if req.ClientID <= 0 || req.ExecutorID <= 0 {
		return nil, utils.NewValidationError("clientId and executorId must be positive integers")
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, utils.NewValidationError("title is required")
	}
	if req.EstimatedDuration < 0 || req.EstimatedDuration > 24 {
		return nil, utils.NewValidationError("estimatedDuration must be between 0 and 24 hours")
	}
	if req.Price < 0 {
		return nil, utils.NewValidationError("price must not be negative")
	}
	start, err := availability.ParseClock(req.Time)
	if err != nil {
		return nil, utils.NewValidationError("invalid time %q, want HH:MM", req.Time)
	}

	o := &models.Order{
		ClientID:          req.ClientID,
		ExecutorID:        req.ExecutorID,
		Title:             title,
		Description:       req.Description,
		Address:           req.Address,
		Date:              req.Date,
		Time:              availability.FormatClock(start),
		EstimatedDuration: req.EstimatedDuration,
		Price:             req.Price,
		Status:            models.OrderPending,
	}
	end := start + o.DurationMinutes()
	if end > 24*60 {
		return nil, utils.NewValidationError("order must finish on the day it starts")
	}

	if err := s.ensureExecutor(ctx, req.ExecutorID); err != nil {
		return nil, err
	}
	if err := s.Availability.CheckWindow(ctx, req.ExecutorID, req.Date, start, end); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	o.CreatedAt = now
	o.UpdatedAt = now
	if err := s.Repo.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger().Info("Order created",
		zap.Int64("orderID", o.ID),
		zap.Int64("executorID", o.ExecutorID),
		zap.Int64("clientID", o.ClientID),
		zap.String("date", o.Date),
		zap.String("time", o.Time),
	)
	return o, nil
}

func (s *DefaultOrderService) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	if id <= 0 {
		return nil, utils.NewValidationError("order id must be a positive integer")
	}
	o, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, utils.ErrNotFound) {
		return nil, &utils.NotFoundError{Entity: "order", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	return o, nil
}

func (s *DefaultOrderService) ListOrders(ctx context.Context, filter OrderFilter) ([]models.Order, error) {
	var (
		orders []models.Order
		err    error
	)
	switch {
	case filter.ClientID > 0:
		orders, err = s.Repo.ListByClient(ctx, filter.ClientID)
	case filter.ExecutorID > 0 && filter.Date != "":
		if _, perr := time.Parse(time.DateOnly, filter.Date); perr != nil {
			return nil, utils.NewValidationError("invalid date %q, want YYYY-MM-DD", filter.Date)
		}
		orders, err = s.Repo.ListByExecutorAndDate(ctx, filter.ExecutorID, filter.Date, nil)
	default:
		return nil, utils.NewValidationError("either clientId or executorId with date is required")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

// UpdateStatus applies one lifecycle step. Confirming re-checks the schedule
// because pending orders do not reserve time.
func (s *DefaultOrderService) UpdateStatus(ctx context.Context, id int64, status string) (*models.Order, error) {
	status = strings.TrimSpace(status)
	if !knownStatus(status) {
		return nil, utils.NewValidationError("unknown status %q", status)
	}
	o, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(o.Status, status) {
		return nil, utils.NewConflictError("cannot move order %d from %s to %s", id, o.Status, status)
	}

	now := time.Now().UTC()
	if status == models.OrderConfirmed {
		// The window check and the write must not interleave with another
		// confirmation for the same executor.
		err = s.withExecutorLock(ctx, o.ExecutorID, func(ctx context.Context) error {
			start, err := availability.ParseClock(o.Time)
			if err != nil {
				return fmt.Errorf("order %d has malformed time %q: %w", id, o.Time, err)
			}
			if err := s.Availability.CheckWindow(ctx, o.ExecutorID, o.Date, start, start+o.DurationMinutes()); err != nil {
				return err
			}
			return s.moveStatus(ctx, o, status, now)
		})
	} else {
		err = s.moveStatus(ctx, o, status, now)
	}
	if err != nil {
		return nil, err
	}

	from := o.Status
	o.Status = status
	o.UpdatedAt = now
	s.logger().Info("Order status changed", zap.Int64("orderID", id), zap.String("from", from), zap.String("to", status))

	if status == models.OrderConfirmed && s.Reminders != nil {
		s.scheduleReminder(ctx, o)
	}
	return o, nil
}

func (s *DefaultOrderService) moveStatus(ctx context.Context, o *models.Order, status string, at time.Time) error {
	ok, err := s.Repo.UpdateStatus(ctx, o.ID, o.Status, status, at)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if !ok {
		return utils.NewConflictError("order %d was modified concurrently", o.ID)
	}
	return nil
}

// scheduleReminder never fails the status change; a lost reminder is only logged.
func (s *DefaultOrderService) scheduleReminder(ctx context.Context, o *models.Order) {
	loc := s.Location
	if loc == nil {
		loc = time.Local
	}
	startsAt, err := time.ParseInLocation("2006-01-02 15:04", o.Date+" "+o.Time, loc)
	if err != nil {
		s.logger().Warn("Cannot compute order start for reminder", zap.Int64("orderID", o.ID), zap.Error(err))
		return
	}
	if err := s.Reminders.ScheduleOrderReminder(ctx, o, startsAt); err != nil {
		s.logger().Error("Failed to schedule order reminder", zap.Int64("orderID", o.ID), zap.Error(err))
	}
}

func (s *DefaultOrderService) ensureExecutor(ctx context.Context, executorID int64) error {
	if s.Executors == nil {
		return nil
	}
	_, err := s.Executors.GetByID(ctx, executorID)
	if errors.Is(err, utils.ErrNotFound) {
		return &utils.NotFoundError{Entity: "executor", ID: executorID}
	}
	if err != nil {
		return fmt.Errorf("failed to load executor: %w", err)
	}
	return nil
}

func (s *DefaultOrderService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
