package ssp

import "errors"

var (
	// ErrBadTableSize is returned when tables are requested with a
	// non-positive length or timestep size.
	ErrBadTableSize = errors.New("ssp: invalid table size")

	// ErrBadPopulation is returned when a population has no IMF, a negative
	// post main sequence lifetime ratio, or an invalid recycling mode.
	ErrBadPopulation = errors.New("ssp: invalid stellar population")
)
