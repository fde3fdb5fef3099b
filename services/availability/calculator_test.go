package availability

import (
	"reflect"
	"testing"
	"time"

	"marketplace/models"

	"go.uber.org/zap"
)

func TestWeekdayIndex(t *testing.T) {
	cases := map[time.Weekday]int{
		time.Monday:    0,
		time.Tuesday:   1,
		time.Wednesday: 2,
		time.Thursday:  3,
		time.Friday:    4,
		time.Saturday:  5,
		time.Sunday:    6,
	}
	for wd, want := range cases {
		if got := WeekdayIndex(wd); got != want {
			t.Errorf("WeekdayIndex(%s) = %d, want %d", wd, got, want)
		}
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:00", 540, false},
		{"9:30", 570, false},
		{"23:59", 1439, false},
		{"24:00", 1440, false},
		{"24:01", 0, true},
		{"12:60", 0, true},
		{"1200", 0, true},
		{"ab:cd", 0, true},
		{"12:5", 0, true},
		{"", 0, true},
		{"09:+5", 0, true},
		{"+9:00", 0, true},
		{"-0:30", 0, true},
		{"9:-0", 0, true},
		{" 09:00", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseClock(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	if got := FormatClock(545); got != "09:05" {
		t.Errorf("FormatClock(545) = %q", got)
	}
	if got := FormatClock(1440); got != "24:00" {
		t.Errorf("FormatClock(1440) = %q", got)
	}
}

func workday(start, end string) *models.WeeklyHours {
	return &models.WeeklyHours{ExecutorID: 1, StartTime: start, EndTime: end, IsWorking: true}
}

func TestFreeSlotsOrderBlocksDefaultTwoHours(t *testing.T) {
	orders := []models.Order{{ID: 7, Title: "Plumbing", Time: "10:00", Status: models.OrderConfirmed}}
	busy := BusyFromOrders(orders, zap.NewNop())

	got, err := FreeSlots(workday("09:00", "18:00"), busy)
	if err != nil {
		t.Fatalf("FreeSlots: %v", err)
	}
	want := []string{"09:00", "12:00", "13:00", "14:00", "15:00", "16:00", "17:00"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FreeSlots = %v, want %v", got, want)
	}
}

func TestFreeSlotsDayOff(t *testing.T) {
	hours := workday("09:00", "18:00")
	hours.IsWorking = false

	got, err := FreeSlots(hours, nil)
	if err != nil {
		t.Fatalf("FreeSlots: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("FreeSlots on a day off = %#v, want empty non-nil slice", got)
	}
}

func TestFreeSlotsMissingRow(t *testing.T) {
	got, err := FreeSlots(nil, nil)
	if err != nil {
		t.Fatalf("FreeSlots: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("FreeSlots without hours = %#v, want empty non-nil slice", got)
	}
}

func TestFreeSlotsPartialHourAtEnd(t *testing.T) {
	got, err := FreeSlots(workday("09:30", "12:00"), nil)
	if err != nil {
		t.Fatalf("FreeSlots: %v", err)
	}
	want := []string{"09:30", "10:30"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FreeSlots = %v, want %v", got, want)
	}
}

func TestFreeSlotsInvalidStoredHours(t *testing.T) {
	if _, err := FreeSlots(workday("9am", "18:00"), nil); err == nil {
		t.Fatal("expected error for malformed start time")
	}
}

func TestFreeSlotsNeverOverlapBusy(t *testing.T) {
	events := []models.CalendarEvent{
		{ID: 1, Title: "Dentist", Time: "09:45", Duration: 30},
		{ID: 2, Title: "Travel", Time: "13:10", Duration: 5},
		{ID: 3, Title: "Broken", Time: "nope", Duration: 60},
	}
	orders := []models.Order{
		{ID: 4, Time: "15:00", EstimatedDuration: 1.5, Status: models.OrderInProgress},
		{ID: 5, Time: "11:00", Status: models.OrderPending},
		{ID: 6, Time: "11:00", Status: models.OrderCancelled},
	}
	logger := zap.NewNop()
	busy := append(BusyFromEvents(events, logger), BusyFromOrders(orders, logger)...)
	if len(busy) != 3 {
		t.Fatalf("expected 3 busy intervals, got %d", len(busy))
	}

	slots, err := FreeSlots(workday("08:00", "20:00"), busy)
	if err != nil {
		t.Fatalf("FreeSlots: %v", err)
	}
	for _, s := range slots {
		start, _ := ParseClock(s)
		for _, b := range busy {
			if Overlaps(start, start+SlotLength, b.Start, b.End) {
				t.Errorf("slot %s overlaps busy %s-%s", s, FormatClock(b.Start), FormatClock(b.End))
			}
		}
	}
	want := []string{"08:00", "11:00", "12:00", "14:00", "17:00", "18:00", "19:00"}
	if !reflect.DeepEqual(slots, want) {
		t.Fatalf("FreeSlots = %v, want %v", slots, want)
	}
}

func TestFreeSlotsAdjacentBusyDoesNotBlock(t *testing.T) {
	busy := []models.BusyInterval{{Start: 600, End: 660}}
	got, err := FreeSlots(workday("09:00", "12:00"), busy)
	if err != nil {
		t.Fatalf("FreeSlots: %v", err)
	}
	want := []string{"09:00", "11:00"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FreeSlots = %v, want %v", got, want)
	}
}

func TestBusyFromEventsClampsToEndOfDay(t *testing.T) {
	busy := BusyFromEvents([]models.CalendarEvent{{ID: 1, Time: "23:00", Duration: 180}}, zap.NewNop())
	if len(busy) != 1 || busy[0].End != minutesPerDay {
		t.Fatalf("busy = %+v, want end clamped to %d", busy, minutesPerDay)
	}
}

func TestSortBusy(t *testing.T) {
	busy := []models.BusyInterval{{Start: 600, End: 700}, {Start: 540, End: 600}, {Start: 600, End: 650}}
	SortBusy(busy)
	want := []models.BusyInterval{{Start: 540, End: 600}, {Start: 600, End: 650}, {Start: 600, End: 700}}
	if !reflect.DeepEqual(busy, want) {
		t.Fatalf("SortBusy = %+v", busy)
	}
}
