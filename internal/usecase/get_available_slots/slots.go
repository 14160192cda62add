package get_available_slots

import (
	"fmt"
	"time"

	"github.com/bookathing/bookathing/internal/domain"
)

// generateSlots produces the ordered slot sequence for one day.
//
// The cursor starts at local midnight plus the schedule's start time and emits
// [cursor, cursor+duration) while the slot end stays within the schedule's end
// boundary. A trailing interval that would cross the boundary is dropped, never
// truncated, so every emitted slot has exactly the configured duration.
func generateSlots(
	schedule domain.DaySchedule,
	slotDurationMinutes int,
	dayStart time.Time,
	now time.Time,
	bookings []*domain.Booking,
) ([]domain.Slot, error) {
	if !schedule.Enabled {
		return []domain.Slot{}, nil
	}

	startMinutes, err := schedule.Start.Minutes()
	if err != nil {
		return nil, fmt.Errorf("invalid schedule start: %w", err)
	}
	endMinutes, err := schedule.End.Minutes()
	if err != nil {
		return nil, fmt.Errorf("invalid schedule end: %w", err)
	}

	duration := time.Duration(slotDurationMinutes) * time.Minute
	cursor := dayStart.Add(time.Duration(startMinutes) * time.Minute)
	bound := dayStart.Add(time.Duration(endMinutes) * time.Minute)

	slots := make([]domain.Slot, 0)
	for !cursor.Add(duration).After(bound) {
		slotEnd := cursor.Add(duration)

		isBooked := overlapsAny(cursor, slotEnd, bookings)
		isPast := cursor.Before(now)

		slots = append(slots, domain.Slot{
			Start:          cursor.UTC(),
			End:            slotEnd.UTC(),
			StartFormatted: cursor.Format(domain.TimeFormat),
			EndFormatted:   slotEnd.Format(domain.TimeFormat),
			Available:      !isBooked && !isPast,
			IsPast:         isPast,
			IsBooked:       isBooked,
		})

		cursor = slotEnd
	}

	return slots, nil
}

// overlapsAny reports whether [start, end) overlaps any non-cancelled booking.
// Half-open intervals: touching boundaries are not an overlap.
func overlapsAny(start, end time.Time, bookings []*domain.Booking) bool {
	for _, b := range bookings {
		if b.IsActive() && b.Overlaps(start, end) {
			return true
		}
	}
	return false
}
