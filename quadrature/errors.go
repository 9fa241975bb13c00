package quadrature

import "errors"

var (
	// ErrNilFunc is returned when an Integral has no integrand.
	ErrNilFunc = errors.New("quadrature: nil integrand")

	// ErrBadSubdivision is returned when NMin or NMax are not positive or
	// NMin exceeds NMax.
	ErrBadSubdivision = errors.New("quadrature: invalid subdivision bounds")

	// ErrBadTolerance is returned when the tolerance is not in (0, 1).
	ErrBadTolerance = errors.New("quadrature: tolerance must be in (0, 1)")

	// ErrUnknownMethod is returned for a method name or value that is not
	// supported.
	ErrUnknownMethod = errors.New("quadrature: unknown method")

	// ErrNonFinite is returned when the bounds are NaN or infinite.
	ErrNonFinite = errors.New("quadrature: non-finite bound")
)
