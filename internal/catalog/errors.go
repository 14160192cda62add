package catalog

import "errors"

var (
	// ErrResourceNotFound is returned when a resource id is not in the catalog
	ErrResourceNotFound = errors.New("catalog: resource not found")

	// ErrNoResources is returned when the catalog file defines no resources
	ErrNoResources = errors.New("catalog: no resources defined")

	// ErrDuplicateResourceID is returned when two resources share an id
	ErrDuplicateResourceID = errors.New("catalog: duplicate resource id")

	// ErrInvalidSchedule is returned when a working-hours entry fails validation
	ErrInvalidSchedule = errors.New("catalog: invalid working hours")

	// ErrInvalidSlotDuration is returned when a slot duration is out of range
	ErrInvalidSlotDuration = errors.New("catalog: invalid slot duration")
)
