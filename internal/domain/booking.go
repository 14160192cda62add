package domain

import "time"

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// Booking represents a committed reservation of a resource for a time interval.
// Bookings are never deleted; cancellation is a status change that preserves history.
type Booking struct {
	ID         string
	ResourceID string
	StartTime  time.Time // UTC instant
	EndTime    time.Time // UTC instant
	UserName   string

	UserEmail *string
	UserPhone *string
	Notes     *string

	Status BookingStatus

	CreatedAt   time.Time
	CancelledAt *time.Time
	UpdatedAt   *time.Time
}

// IsActive returns true if the booking still occupies its interval.
// Cancelled bookings keep their record but free the slot.
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// Overlaps reports whether the booking's half-open interval [StartTime, EndTime)
// overlaps [start, end). Touching boundaries do not overlap.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && start.Before(b.EndTime)
}

// Contains reports whether the instant t falls inside [StartTime, EndTime).
func (b *Booking) Contains(t time.Time) bool {
	return !t.Before(b.StartTime) && t.Before(b.EndTime)
}

// BookingsFilter narrows a booking listing. Nil fields are ignored;
// set fields combine by conjunction.
type BookingsFilter struct {
	ResourceID *string
	StartDate  *time.Time // bookings starting at or after this instant
	EndDate    *time.Time // bookings starting at or before this instant
	Status     *BookingStatus
	UserName   *string // case-insensitive substring match
}
