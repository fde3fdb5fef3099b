package models

// Availability is the computed schedule of one executor for one date.
type Availability struct {
	WorkingHours   *WeeklyHours `json:"workingHours"`
	BusySlots      []BusySlot   `json:"busySlots"`
	AvailableSlots []string     `json:"availableSlots"`
}
