package imf

import "errors"

var (
	// ErrUnrecognizedIMF is returned for a family tag outside the supported
	// set, or a Custom IMF without a function.
	ErrUnrecognizedIMF = errors.New("imf: unrecognized IMF")

	// ErrBadMassRange is returned when the mass bounds are not
	// 0 < lower < upper.
	ErrBadMassRange = errors.New("imf: invalid stellar mass range")
)
