package models

// OrderReminderPayload is the body of a queued order reminder.
type OrderReminderPayload struct {
	OrderID    int64  `json:"orderId"`
	ExecutorID int64  `json:"executorId"`
	ClientID   int64  `json:"clientId"`
	Title      string `json:"title"`
	StartsAt   string `json:"startsAt"` // RFC 3339
}
