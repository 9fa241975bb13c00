package zone

import "errors"

var (
	// ErrAllocation is returned when a zone cannot size its arrays: the
	// timestep is not positive, there are no output times, or the run is
	// longer than MaxTimesteps.
	ErrAllocation = errors.New("zone: cannot allocate run")

	// ErrBadParameter is returned for invalid zone parameters.
	ErrBadParameter = errors.New("zone: invalid parameter")
)
