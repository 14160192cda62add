package bookings

import "errors"

var (
	// ErrResourceNotFound is returned when the booking targets an unknown resource
	ErrResourceNotFound = errors.New("bookings: resource not found")

	// ErrBookingNotFound is returned when a booking id is unknown
	ErrBookingNotFound = errors.New("bookings: booking not found")

	// ErrInvalidInput is returned when request fields fail validation
	ErrInvalidInput = errors.New("bookings: invalid input data")

	// ErrSlotConflict is returned when the interval overlaps an existing
	// non-cancelled booking for the same resource
	ErrSlotConflict = errors.New("bookings: time slot already booked")

	// ErrCapacityExceeded is returned when the user already holds the maximum
	// number of bookings for the resource on that day
	ErrCapacityExceeded = errors.New("bookings: max bookings per day exceeded")

	// ErrInvalidStatus is returned when a status value is not one of the four
	// booking states
	ErrInvalidStatus = errors.New("bookings: invalid booking status")

	// ErrInternal is returned on unexpected internal failures
	ErrInternal = errors.New("bookings: internal error")
)
