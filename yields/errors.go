package yields

import "errors"

var (
	// ErrBadGrid is returned for interpolation grids with mismatched or
	// unsorted axes.
	ErrBadGrid = errors.New("yields: invalid yield grid")

	// ErrBadDTD is returned for delay time distributions with invalid
	// parameters, or a table requested with invalid sizes.
	ErrBadDTD = errors.New("yields: invalid delay time distribution")
)
