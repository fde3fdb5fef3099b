package models

import "time"

// WeeklyHours is an executor's recurring working window for one day of the week.
// DayOfWeek uses Monday=0 ... Sunday=6.
type WeeklyHours struct {
	ExecutorID int64     `bson:"executorId" json:"executorId"`
	DayOfWeek  int       `bson:"dayOfWeek" json:"dayOfWeek"`
	StartTime  string    `bson:"startTime" json:"startTime"` // "HH:MM"
	EndTime    string    `bson:"endTime" json:"endTime"`     // "HH:MM"
	IsWorking  bool      `bson:"isWorking" json:"isWorking"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}

// SetWeeklyHoursRequest replaces the listed days of an executor's week.
type SetWeeklyHoursRequest struct {
	Days []WeeklyHours `json:"days" binding:"required,min=1,max=7"`
}
