package order

import (
	"context"
	"time"

	executorRepo "marketplace/database/repository/executor"
	orderRepo "marketplace/database/repository/order"
	"marketplace/models"
	"marketplace/services/availability"
	"marketplace/services/tasks"

	"go.uber.org/zap"
)

// OrderFilter selects orders either by client or by executor and date.
type OrderFilter struct {
	ClientID   int64
	ExecutorID int64
	Date       string
}

type OrderService interface {
	CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error)
	GetOrder(ctx context.Context, id int64) (*models.Order, error)
	ListOrders(ctx context.Context, filter OrderFilter) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*models.Order, error)
}

// DefaultOrderService is the production implementation. Reminders may be nil,
// in which case confirmations queue nothing. Locker may be nil for a single
// instance; confirmations are then serialised in process only.
type DefaultOrderService struct {
	Repo         orderRepo.OrderRepository
	Executors    executorRepo.ExecutorRepository
	Availability availability.AvailabilityService
	Reminders    tasks.ReminderScheduler
	Locker       executorRepo.ScheduleLocker
	Location     *time.Location
	Logger       *zap.Logger

	locks executorLocks
}
