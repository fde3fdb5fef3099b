package models

import "time"

// CalendarEvent blocks part of an executor's day (personal time, travel, a job taken offline).
type CalendarEvent struct {
	ID          int64     `bson:"id" json:"id"`
	ExecutorID  int64     `bson:"executorId" json:"executorId"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Date        string    `bson:"date" json:"date"`         // "YYYY-MM-DD"
	Time        string    `bson:"time" json:"time"`         // "HH:MM"
	Duration    int       `bson:"duration" json:"duration"` // minutes
	Type        string    `bson:"type" json:"type"`         // e.g. "personal", "blocked"
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// CreateEventRequest is the payload for adding a calendar event.
type CreateEventRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	Duration    int    `json:"duration" binding:"required"`
	Type        string `json:"type"`
}
