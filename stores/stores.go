// Package stores defines the narrow persistence contracts the services
// depend on, together with their gorm-backed implementations. Services never
// see gorm types; store failures are translated to the sentinels below.
package stores

import "errors"

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint is violated.
	ErrDuplicate = errors.New("duplicate record")
)
