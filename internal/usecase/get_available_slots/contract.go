package get_available_slots

import (
	"context"
	"time"

	"github.com/bookathing/bookathing/internal/domain"
)

// ResourceCatalog supplies resource definitions and schedule fallbacks.
type ResourceCatalog interface {
	Resource(id string) (*domain.Resource, error)
	WorkingHoursFor(resourceID, weekday string) (domain.DaySchedule, bool)
	SlotDurationFor(resourceID string) int
}

// BookingSource supplies the non-cancelled bookings of a resource whose start
// time falls inside [from, to).
type BookingSource interface {
	ListForResource(ctx context.Context, resourceID string, from, to time.Time) ([]*domain.Booking, error)
}

// TimeProvider supplies the current time (swappable in tests).
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging interface used by the use case.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production time source.
type RealTimeProvider struct{}

// Now returns the current time.
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
