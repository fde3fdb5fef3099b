package models

import "time"

const (
	OrderPending    = "pending"
	OrderConfirmed  = "confirmed"
	OrderInProgress = "in_progress"
	OrderCompleted  = "completed"
	OrderCancelled  = "cancelled"
)

// DefaultOrderDuration is used when an order carries no estimate, in hours.
const DefaultOrderDuration = 2.0

// Order is a client's booking of an executor for a date and start time.
type Order struct {
	ID                int64      `bson:"id" json:"id"`
	ClientID          int64      `bson:"clientId" json:"clientId"`
	ExecutorID        int64      `bson:"executorId" json:"executorId"`
	Title             string     `bson:"title" json:"title"`
	Description       string     `bson:"description,omitempty" json:"description,omitempty"`
	Address           string     `bson:"address,omitempty" json:"address,omitempty"`
	Date              string     `bson:"date" json:"date"`                                   // "YYYY-MM-DD"
	Time              string     `bson:"time" json:"time"`                                   // "HH:MM"
	EstimatedDuration float64    `bson:"estimatedDuration" json:"estimatedDuration"`         // hours
	Price             float64    `bson:"price" json:"price"`
	Status            string     `bson:"status" json:"status"`
	ReminderSentAt    *time.Time `bson:"reminderSentAt,omitempty" json:"reminderSentAt,omitempty"`
	CreatedAt         time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// DurationMinutes returns the order length, falling back to DefaultOrderDuration.
func (o Order) DurationMinutes() int {
	hours := o.EstimatedDuration
	if hours <= 0 {
		hours = DefaultOrderDuration
	}
	return int(hours*60 + 0.5)
}

// BlocksSchedule reports whether the order occupies the executor's time.
func (o Order) BlocksSchedule() bool {
	return o.Status == OrderConfirmed || o.Status == OrderInProgress
}

// CreateOrderRequest is the payload for placing an order.
type CreateOrderRequest struct {
	ClientID          int64   `json:"clientId" binding:"required"`
	ExecutorID        int64   `json:"executorId" binding:"required"`
	Title             string  `json:"title" binding:"required"`
	Description       string  `json:"description"`
	Address           string  `json:"address"`
	Date              string  `json:"date" binding:"required"`
	Time              string  `json:"time" binding:"required"`
	EstimatedDuration float64 `json:"estimatedDuration"`
	Price             float64 `json:"price"`
}

// UpdateOrderStatusRequest moves an order to a new status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
