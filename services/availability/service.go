package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace/models"
	"marketplace/utils"

	"go.uber.org/zap"
)

// ErrPastDate is returned when availability is requested for a day before today.
var ErrPastDate = &utils.ValidationError{Message: "date must not be in the past"}

// WorkingHoursSource returns one day of an executor's week, or nil when the day has no row.
type WorkingHoursSource interface {
	GetDay(ctx context.Context, executorID int64, dayOfWeek int) (*models.WeeklyHours, error)
}

// EventSource lists an executor's calendar events for one date.
type EventSource interface {
	ListByExecutorAndDate(ctx context.Context, executorID int64, date string) ([]models.CalendarEvent, error)
}

// OrderSource lists an executor's orders for one date, filtered by status.
type OrderSource interface {
	ListByExecutorAndDate(ctx context.Context, executorID int64, date string, statuses []string) ([]models.Order, error)
}

// AvailabilityService computes bookable slots.
type AvailabilityService interface {
	// GetAvailability returns working hours, busy intervals and free hour slots for one date.
	GetAvailability(ctx context.Context, executorID int64, date string) (*models.Availability, error)
	// CheckWindow verifies that [start, end) minutes on date lies inside working
	// hours and overlaps no busy interval.
	CheckWindow(ctx context.Context, executorID int64, date string, start, end int) error
}

// DefaultAvailabilityService reads its inputs from the store on every call and keeps no state.
type DefaultAvailabilityService struct {
	Hours    WorkingHoursSource
	Events   EventSource
	Orders   OrderSource
	Location *time.Location
	Now      func() time.Time
	Logger   *zap.Logger
}

var blockingStatuses = []string{models.OrderConfirmed, models.OrderInProgress}

// ParseDate validates a "YYYY-MM-DD" date in the service's location and
// rejects days before today.
func (s *DefaultAvailabilityService) ParseDate(date string) (time.Time, error) {
	if date == "" {
		return time.Time{}, utils.NewValidationError("date is required")
	}
	loc := s.location()
	day, err := time.ParseInLocation(time.DateOnly, date, loc)
	if err != nil {
		return time.Time{}, utils.NewValidationError("invalid date %q, want YYYY-MM-DD", date)
	}

	now := s.now().In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	if day.Before(today) {
		return time.Time{}, ErrPastDate
	}
	return day, nil
}

func (s *DefaultAvailabilityService) GetAvailability(ctx context.Context, executorID int64, date string) (*models.Availability, error) {
	if executorID <= 0 {
		return nil, utils.NewValidationError("executorId is required")
	}
	day, err := s.ParseDate(date)
	if err != nil {
		if errors.Is(err, ErrPastDate) {
			return &models.Availability{BusySlots: []models.BusySlot{}, AvailableSlots: []string{}}, err
		}
		return nil, err
	}

	hours, busy, err := s.load(ctx, executorID, day)
	if err != nil {
		return nil, err
	}

	slots, err := FreeSlots(hours, busy)
	if err != nil {
		return nil, fmt.Errorf("stored working hours for executor %d are invalid: %w", executorID, err)
	}

	return &models.Availability{
		WorkingHours:   hours,
		BusySlots:      ToBusySlots(busy),
		AvailableSlots: slots,
	}, nil
}

func (s *DefaultAvailabilityService) CheckWindow(ctx context.Context, executorID int64, date string, start, end int) error {
	day, err := s.ParseDate(date)
	if err != nil {
		return err
	}
	if start >= end {
		return utils.NewValidationError("window end must be after its start")
	}

	hours, busy, err := s.load(ctx, executorID, day)
	if err != nil {
		return err
	}

	workStart, workEnd, ok, err := WorkingWindow(hours)
	if err != nil {
		return fmt.Errorf("stored working hours for executor %d are invalid: %w", executorID, err)
	}
	if !ok {
		return utils.NewConflictError("executor does not work on %s", date)
	}
	if start < workStart || end > workEnd {
		return utils.NewConflictError("requested time %s-%s is outside working hours %s-%s",
			FormatClock(start), FormatClock(end), hours.StartTime, hours.EndTime)
	}
	for _, b := range busy {
		if Overlaps(start, end, b.Start, b.End) {
			return utils.NewConflictError("requested time overlaps %s %q (%s-%s)",
				b.Type, b.Title, FormatClock(b.Start), FormatClock(b.End))
		}
	}
	return nil
}

// load gathers the working hours row and the sorted busy intervals of one day.
func (s *DefaultAvailabilityService) load(ctx context.Context, executorID int64, day time.Time) (*models.WeeklyHours, []models.BusyInterval, error) {
	date := day.Format(time.DateOnly)

	hours, err := s.Hours.GetDay(ctx, executorID, WeekdayIndex(day.Weekday()))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load working hours: %w", err)
	}

	events, err := s.Events.ListByExecutorAndDate(ctx, executorID, date)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load calendar events: %w", err)
	}

	orders, err := s.Orders.ListByExecutorAndDate(ctx, executorID, date, blockingStatuses)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load orders: %w", err)
	}

	logger := s.logger()
	busy := append(BusyFromEvents(events, logger), BusyFromOrders(orders, logger)...)
	SortBusy(busy)
	return hours, busy, nil
}

func (s *DefaultAvailabilityService) location() *time.Location {
	if s.Location == nil {
		return time.Local
	}
	return s.Location
}

func (s *DefaultAvailabilityService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *DefaultAvailabilityService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
