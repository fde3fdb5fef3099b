package models

import "time"

// Executor is a contractor offering services on the marketplace.
type Executor struct {
	ID             int64     `bson:"id" json:"id"`
	Name           string    `bson:"name" json:"name"`
	Email          string    `bson:"email" json:"email"`
	Phone          string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Specialization string    `bson:"specialization,omitempty" json:"specialization,omitempty"`
	City           string    `bson:"city,omitempty" json:"city,omitempty"`
	HourlyRate     float64   `bson:"hourlyRate" json:"hourlyRate"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ExecutorSearchCriteria filters executor listings. Empty fields match everything.
type ExecutorSearchCriteria struct {
	Specialization string
	City           string
}

// RegisterExecutorRequest is the onboarding payload.
type RegisterExecutorRequest struct {
	Name           string  `json:"name" binding:"required"`
	Email          string  `json:"email" binding:"required"`
	Phone          string  `json:"phone"`
	Specialization string  `json:"specialization"`
	City           string  `json:"city"`
	HourlyRate     float64 `json:"hourlyRate"`
}
