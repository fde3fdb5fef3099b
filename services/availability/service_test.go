package availability

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"marketplace/models"
	"marketplace/utils"
)

type fakeHours map[int]*models.WeeklyHours

func (f fakeHours) GetDay(_ context.Context, _ int64, day int) (*models.WeeklyHours, error) {
	return f[day], nil
}

type fakeEvents []models.CalendarEvent

func (f fakeEvents) ListByExecutorAndDate(_ context.Context, _ int64, date string) ([]models.CalendarEvent, error) {
	var out []models.CalendarEvent
	for _, ev := range f {
		if ev.Date == date {
			out = append(out, ev)
		}
	}
	return out, nil
}

type fakeOrders struct {
	orders       []models.Order
	lastStatuses []string
	err          error
}

func (f *fakeOrders) ListByExecutorAndDate(_ context.Context, _ int64, date string, statuses []string) ([]models.Order, error) {
	f.lastStatuses = statuses
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Order
	for _, o := range f.orders {
		if o.Date != date {
			continue
		}
		for _, s := range statuses {
			if o.Status == s {
				out = append(out, o)
				break
			}
		}
	}
	return out, nil
}

// Wednesday 2025-06-11, 10:00 UTC.
var fixedNow = time.Date(2025, 6, 11, 10, 0, 0, 0, time.UTC)

func newTestService(hours fakeHours, events fakeEvents, orders *fakeOrders) *DefaultAvailabilityService {
	if orders == nil {
		orders = &fakeOrders{}
	}
	return &DefaultAvailabilityService{
		Hours:    hours,
		Events:   events,
		Orders:   orders,
		Location: time.UTC,
		Now:      func() time.Time { return fixedNow },
	}
}

func TestGetAvailability(t *testing.T) {
	// 2025-06-16 is a Monday.
	hours := fakeHours{0: workday("09:00", "18:00")}
	orders := &fakeOrders{orders: []models.Order{
		{ID: 1, Date: "2025-06-16", Time: "10:00", Title: "Repair", Status: models.OrderConfirmed},
		{ID: 2, Date: "2025-06-16", Time: "15:00", Status: models.OrderPending},
	}}
	events := fakeEvents{{ID: 3, Date: "2025-06-16", Time: "17:00", Duration: 60, Title: "Gym"}}
	svc := newTestService(hours, events, orders)

	got, err := svc.GetAvailability(context.Background(), 1, "2025-06-16")
	if err != nil {
		t.Fatalf("GetAvailability: %v", err)
	}
	want := []string{"09:00", "12:00", "13:00", "14:00", "15:00", "16:00"}
	if !reflect.DeepEqual(got.AvailableSlots, want) {
		t.Errorf("AvailableSlots = %v, want %v", got.AvailableSlots, want)
	}
	wantBusy := []models.BusySlot{
		{Start: "10:00", End: "12:00", Type: models.BusyTypeOrder, Title: "Repair", ID: 1},
		{Start: "17:00", End: "18:00", Type: models.BusyTypeEvent, Title: "Gym", ID: 3},
	}
	if !reflect.DeepEqual(got.BusySlots, wantBusy) {
		t.Errorf("BusySlots = %+v, want %+v", got.BusySlots, wantBusy)
	}
	if got.WorkingHours == nil || got.WorkingHours.StartTime != "09:00" {
		t.Errorf("WorkingHours = %+v", got.WorkingHours)
	}
	if !reflect.DeepEqual(orders.lastStatuses, []string{models.OrderConfirmed, models.OrderInProgress}) {
		t.Errorf("orders queried with statuses %v", orders.lastStatuses)
	}
}

func TestGetAvailabilityIsIdempotent(t *testing.T) {
	svc := newTestService(fakeHours{2: workday("08:00", "12:00")}, nil, nil)
	first, err := svc.GetAvailability(context.Background(), 1, "2025-06-11")
	if err != nil {
		t.Fatalf("GetAvailability: %v", err)
	}
	second, err := svc.GetAvailability(context.Background(), 1, "2025-06-11")
	if err != nil {
		t.Fatalf("GetAvailability: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("results differ: %+v vs %+v", first, second)
	}
}

func TestGetAvailabilityMissingRow(t *testing.T) {
	svc := newTestService(fakeHours{}, nil, nil)
	got, err := svc.GetAvailability(context.Background(), 1, "2025-06-12")
	if err != nil {
		t.Fatalf("GetAvailability: %v", err)
	}
	if got.WorkingHours != nil {
		t.Errorf("WorkingHours = %+v, want nil", got.WorkingHours)
	}
	if got.AvailableSlots == nil || len(got.AvailableSlots) != 0 {
		t.Errorf("AvailableSlots = %#v, want empty", got.AvailableSlots)
	}
	if got.BusySlots == nil {
		t.Error("BusySlots is nil, want empty slice")
	}
}

func TestGetAvailabilityValidation(t *testing.T) {
	svc := newTestService(fakeHours{}, nil, nil)
	tests := []struct {
		name       string
		executorID int64
		date       string
	}{
		{"missing executor", 0, "2025-06-12"},
		{"missing date", 1, ""},
		{"malformed date", 1, "12/06/2025"},
		{"impossible date", 1, "2025-02-30"},
		{"past date", 1, "2025-06-10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.GetAvailability(context.Background(), tt.executorID, tt.date)
			var ve *utils.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
		})
	}
}

func TestGetAvailabilityPastDateReturnsEmptySlots(t *testing.T) {
	svc := newTestService(fakeHours{}, nil, nil)
	got, err := svc.GetAvailability(context.Background(), 1, "2025-06-01")
	if !errors.Is(err, ErrPastDate) {
		t.Fatalf("err = %v, want ErrPastDate", err)
	}
	if got == nil || got.AvailableSlots == nil || len(got.AvailableSlots) != 0 {
		t.Fatalf("result = %+v, want empty slots", got)
	}
}

func TestGetAvailabilityTodayIsAllowed(t *testing.T) {
	svc := newTestService(fakeHours{2: workday("09:00", "11:00")}, nil, nil)
	got, err := svc.GetAvailability(context.Background(), 1, "2025-06-11")
	if err != nil {
		t.Fatalf("GetAvailability: %v", err)
	}
	if len(got.AvailableSlots) != 2 {
		t.Fatalf("AvailableSlots = %v", got.AvailableSlots)
	}
}

func TestGetAvailabilityStoreFailure(t *testing.T) {
	svc := newTestService(fakeHours{}, nil, &fakeOrders{err: errors.New("connection reset")})
	_, err := svc.GetAvailability(context.Background(), 1, "2025-06-12")
	if err == nil || utils.StatusFor(err) != 500 {
		t.Fatalf("err = %v, want internal error", err)
	}
}

func TestCheckWindow(t *testing.T) {
	hours := fakeHours{0: workday("09:00", "18:00")}
	orders := &fakeOrders{orders: []models.Order{
		{ID: 1, Date: "2025-06-16", Time: "10:00", Status: models.OrderConfirmed},
	}}
	svc := newTestService(hours, nil, orders)

	tests := []struct {
		name       string
		date       string
		start, end int
		wantStatus int
	}{
		{"free window", "2025-06-16", 13 * 60, 15 * 60, 0},
		{"touches order end", "2025-06-16", 12 * 60, 13 * 60, 0},
		{"overlaps order", "2025-06-16", 11 * 60, 13 * 60, 409},
		{"before opening", "2025-06-16", 8 * 60, 10 * 60, 409},
		{"after closing", "2025-06-16", 17 * 60, 19 * 60, 409},
		{"day without hours", "2025-06-17", 10 * 60, 11 * 60, 409},
		{"past date", "2025-06-09", 10 * 60, 11 * 60, 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.CheckWindow(context.Background(), 1, tt.date, tt.start, tt.end)
			if tt.wantStatus == 0 {
				if err != nil {
					t.Fatalf("CheckWindow: %v", err)
				}
				return
			}
			if got := utils.StatusFor(err); got != tt.wantStatus {
				t.Fatalf("status = %d (%v), want %d", got, err, tt.wantStatus)
			}
		})
	}
}
