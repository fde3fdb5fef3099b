package handlers

import (
	"marketplace/utils"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Availability *AvailabilityHandler
	Executor     *ExecutorHandler
	Schedule     *ScheduleHandler
	Calendar     *CalendarHandler
	Order        *OrderHandler
	Health       *utils.HealthMonitor
}
