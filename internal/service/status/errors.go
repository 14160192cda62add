package status

import "errors"

var (
	// ErrResourceNotFound is returned when the resource id is not in the catalog
	ErrResourceNotFound = errors.New("status: resource not found")

	// ErrInvalidStatus is returned when a value is not a settable resource status
	ErrInvalidStatus = errors.New("status: invalid resource status")
)
