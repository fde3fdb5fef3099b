package calendar

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	calendarRepo "marketplace/database/repository/calendar"
	executorRepo "marketplace/database/repository/executor"
	"marketplace/models"
	"marketplace/services/availability"
	"marketplace/utils"

	"go.uber.org/zap"
)

const defaultEventType = "personal"

// CalendarService manages events that block part of an executor's day.
type CalendarService interface {
	CreateEvent(ctx context.Context, executorID int64, req models.CreateEventRequest) (*models.CalendarEvent, error)
	ListEvents(ctx context.Context, executorID int64, date string) ([]models.CalendarEvent, error)
	DeleteEvent(ctx context.Context, executorID, eventID int64) error
}

type DefaultCalendarService struct {
	Repo      calendarRepo.EventRepository
	Executors executorRepo.ExecutorRepository
	Logger    *zap.Logger
}

func (s *DefaultCalendarService) CreateEvent(ctx context.Context, executorID int64, req models.CreateEventRequest) (*models.CalendarEvent, error) {
	if executorID <= 0 {
		return nil, utils.NewValidationError("executorId must be a positive integer")
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, utils.NewValidationError("title is required")
	}
	if err := validateDate(req.Date); err != nil {
		return nil, err
	}
	start, err := availability.ParseClock(req.Time)
	if err != nil || start >= 24*60 {
		return nil, utils.NewValidationError("invalid time %q, want HH:MM", req.Time)
	}
	if req.Duration < 1 || req.Duration > 24*60 {
		return nil, utils.NewValidationError("duration must be between 1 and 1440 minutes")
	}

	if s.Executors != nil {
		if _, err := s.Executors.GetByID(ctx, executorID); err != nil {
			if errors.Is(err, utils.ErrNotFound) {
				return nil, &utils.NotFoundError{Entity: "executor", ID: executorID}
			}
			return nil, fmt.Errorf("failed to load executor: %w", err)
		}
	}

	eventType := strings.TrimSpace(req.Type)
	if eventType == "" {
		eventType = defaultEventType
	}
	event := &models.CalendarEvent{
		ExecutorID:  executorID,
		Title:       title,
		Description: req.Description,
		Date:        req.Date,
		Time:        availability.FormatClock(start),
		Duration:    req.Duration,
		Type:        eventType,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	s.logger().Info("Calendar event created",
		zap.Int64("executorID", executorID),
		zap.Int64("eventID", event.ID),
		zap.String("date", event.Date),
		zap.String("time", event.Time),
	)
	return event, nil
}

func (s *DefaultCalendarService) ListEvents(ctx context.Context, executorID int64, date string) ([]models.CalendarEvent, error) {
	if executorID <= 0 {
		return nil, utils.NewValidationError("executorId must be a positive integer")
	}
	if err := validateDate(date); err != nil {
		return nil, err
	}
	events, err := s.Repo.ListByExecutorAndDate(ctx, executorID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	if events == nil {
		events = []models.CalendarEvent{}
	}
	return events, nil
}

// DeleteEvent removes an event only if it belongs to the executor.
func (s *DefaultCalendarService) DeleteEvent(ctx context.Context, executorID, eventID int64) error {
	if executorID <= 0 || eventID <= 0 {
		return utils.NewValidationError("executorId and eventId must be positive integers")
	}
	err := s.Repo.Delete(ctx, executorID, eventID)
	if errors.Is(err, utils.ErrNotFound) {
		return &utils.NotFoundError{Entity: "event", ID: eventID}
	}
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	s.logger().Info("Calendar event deleted", zap.Int64("executorID", executorID), zap.Int64("eventID", eventID))
	return nil
}

func validateDate(date string) error {
	if date == "" {
		return utils.NewValidationError("date is required")
	}
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		return utils.NewValidationError("invalid date %q, want YYYY-MM-DD", date)
	}
	return nil
}

func (s *DefaultCalendarService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
