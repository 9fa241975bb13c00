package multizone

import "errors"

var (
	// ErrNoZones is returned when a multizone run has no zones.
	ErrNoZones = errors.New("multizone: no zones")

	// ErrMismatchedTimestep is returned when zones do not share a timestep
	// size.
	ErrMismatchedTimestep = errors.New("multizone: mismatched timestep")

	// ErrMismatchedElements is returned when zones do not track the same
	// elements in the same order.
	ErrMismatchedElements = errors.New("multizone: mismatched elements")

	// ErrDuplicateZone is returned when two zones share a name.
	ErrDuplicateZone = errors.New("multizone: duplicate zone name")

	// ErrBadMigration is returned for migration matrices of the wrong shape,
	// with entries outside [0, 1], or with rows moving more than everything.
	ErrBadMigration = errors.New("multizone: invalid migration matrix")

	// ErrAllocation is returned when the tracer pool would grow past its
	// bound.
	ErrAllocation = errors.New("multizone: tracer pool exhausted")
)
