package availability

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"marketplace/models"

	"go.uber.org/zap"
)

// SlotLength is the length of one bookable slot, in minutes.
const SlotLength = 60

const minutesPerDay = 24 * 60

// WeekdayIndex maps Go's Sunday=0 numbering onto the stored Monday=0 ... Sunday=6 numbering.
func WeekdayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

// ParseClock converts "HH:MM" into minutes from midnight. "24:00" is accepted as end of day.
func ParseClock(s string) (int, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok || len(mm) != 2 || len(hh) == 0 || len(hh) > 2 || !allDigits(hh) || !allDigits(mm) {
		return 0, fmt.Errorf("invalid time %q, want HH:MM", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	if h < 0 || m < 0 || m > 59 || h > 24 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("time %q out of range", s)
	}
	return h*60 + m, nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// FormatClock renders minutes from midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func clampDay(m int) int {
	if m < 0 {
		return 0
	}
	if m > minutesPerDay {
		return minutesPerDay
	}
	return m
}

// Overlaps reports whether the half-open ranges [aStart, aEnd) and [bStart, bEnd) intersect.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// BusyFromEvents turns calendar events into busy intervals. Events with an
// unreadable start time or no duration are skipped.
func BusyFromEvents(events []models.CalendarEvent, logger *zap.Logger) []models.BusyInterval {
	out := make([]models.BusyInterval, 0, len(events))
	for _, ev := range events {
		start, err := ParseClock(ev.Time)
		if err != nil || ev.Duration <= 0 {
			logger.Warn("skipping malformed calendar event", zap.Int64("eventID", ev.ID), zap.String("time", ev.Time), zap.Int("duration", ev.Duration))
			continue
		}
		out = append(out, models.BusyInterval{
			Start:    start,
			End:      clampDay(start + ev.Duration),
			Type:     models.BusyTypeEvent,
			Title:    ev.Title,
			SourceID: ev.ID,
		})
	}
	return out
}

// BusyFromOrders turns confirmed and in-progress orders into busy intervals.
// Orders in any other status do not block the schedule.
func BusyFromOrders(orders []models.Order, logger *zap.Logger) []models.BusyInterval {
	out := make([]models.BusyInterval, 0, len(orders))
	for _, o := range orders {
		if !o.BlocksSchedule() {
			continue
		}
		start, err := ParseClock(o.Time)
		if err != nil {
			logger.Warn("skipping order with malformed time", zap.Int64("orderID", o.ID), zap.String("time", o.Time))
			continue
		}
		out = append(out, models.BusyInterval{
			Start:    start,
			End:      clampDay(start + o.DurationMinutes()),
			Type:     models.BusyTypeOrder,
			Title:    o.Title,
			SourceID: o.ID,
		})
	}
	return out
}

// SortBusy orders intervals by start, then end.
func SortBusy(busy []models.BusyInterval) {
	sort.SliceStable(busy, func(i, j int) bool {
		if busy[i].Start == busy[j].Start {
			return busy[i].End < busy[j].End
		}
		return busy[i].Start < busy[j].Start
	})
}

// WorkingWindow returns the working range of a day in minutes. ok is false for
// a missing row or a day off.
func WorkingWindow(hours *models.WeeklyHours) (start, end int, ok bool, err error) {
	if hours == nil || !hours.IsWorking {
		return 0, 0, false, nil
	}
	if start, err = ParseClock(hours.StartTime); err != nil {
		return 0, 0, false, err
	}
	if end, err = ParseClock(hours.EndTime); err != nil {
		return 0, 0, false, err
	}
	return start, end, start < end, nil
}

// FreeSlots steps through the working window an hour at a time and keeps every
// slot that fits inside it and touches no busy interval.
func FreeSlots(hours *models.WeeklyHours, busy []models.BusyInterval) ([]string, error) {
	slots := []string{}

	start, end, ok, err := WorkingWindow(hours)
	if err != nil || !ok {
		return slots, err
	}

	for s := start; s+SlotLength <= end; s += SlotLength {
		if !isBusy(s, s+SlotLength, busy) {
			slots = append(slots, FormatClock(s))
		}
	}
	return slots, nil
}

func isBusy(start, end int, busy []models.BusyInterval) bool {
	for _, b := range busy {
		if Overlaps(start, end, b.Start, b.End) {
			return true
		}
	}
	return false
}

// ToBusySlots renders intervals in their wire form.
func ToBusySlots(busy []models.BusyInterval) []models.BusySlot {
	out := make([]models.BusySlot, 0, len(busy))
	for _, b := range busy {
		out = append(out, models.BusySlot{
			Start: FormatClock(b.Start),
			End:   FormatClock(b.End),
			Type:  b.Type,
			Title: b.Title,
			ID:    b.SourceID,
		})
	}
	return out
}
