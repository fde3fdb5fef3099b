package models

const (
	BusyTypeEvent = "event"
	BusyTypeOrder = "order"
)

// BusyInterval is a derived time range during which an executor is unavailable.
// Start and End are minutes from midnight; the range is half-open.
type BusyInterval struct {
	Start    int
	End      int
	Type     string
	Title    string
	SourceID int64
}

// BusySlot is the wire form of a BusyInterval.
type BusySlot struct {
	Start string `json:"start"` // "HH:MM"
	End   string `json:"end"`   // "HH:MM"
	Type  string `json:"type"`
	Title string `json:"title"`
	ID    int64  `json:"id"`
}
