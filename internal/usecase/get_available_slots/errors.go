package get_available_slots

import "errors"

var (
	// ErrResourceNotFound is returned when the resource is not in the catalog
	ErrResourceNotFound = errors.New("get_available_slots: resource not found")

	// ErrInvalidInput is returned on missing or malformed request fields
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInvalidTimezone is returned when the timezone name cannot be resolved
	ErrInvalidTimezone = errors.New("get_available_slots: invalid timezone")

	// ErrInternal is returned on unexpected internal failures
	ErrInternal = errors.New("get_available_slots: internal error")
)
