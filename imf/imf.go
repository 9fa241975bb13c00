// Package imf evaluates stellar initial mass functions.
package imf

import (
	"fmt"
	"math"
	"strings"
)

// Family identifies the functional form of an IMF.
type Family int

// The supported families.
const (
	Salpeter Family = iota + 1
	Kroupa
	Custom
)

// Kroupa (2001) break masses and power-law indices, and the Salpeter (1955)
// index.
const (
	KroupaBreakLow  = 0.08
	KroupaBreakHigh = 0.5
	KroupaIndexLow  = 0.3
	KroupaIndexMid  = 1.3
	KroupaIndexHigh = 2.3
	SalpeterIndex   = 2.35
)

// Prefactors applied to the Kroupa segments above each break so the
// distribution is continuous at 0.08 and 0.5 Msun.
const (
	KroupaPrefactorMid  = 0.08
	KroupaPrefactorHigh = 0.04
)

// Default mass range of star formation in Msun.
const (
	DefaultLowerMass = 0.08
	DefaultUpperMass = 100
)

func (f Family) String() string {
	switch f {
	case Salpeter:
		return "salpeter"
	case Kroupa:
		return "kroupa"
	case Custom:
		return "custom"
	default:
		return fmt.Sprintf("Family(%d)", int(f))
	}
}

// Parse maps a family name to a Family. Custom IMFs cannot be named; they are
// built with NewCustom.
func Parse(name string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "salpeter":
		return Salpeter, nil
	case "kroupa":
		return Kroupa, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnrecognizedIMF, name)
	}
}

// An IMF is an (unnormalized) initial mass function over [Lower, Upper].
// It is immutable after construction.
type IMF struct {
	family Family
	lower  float64
	upper  float64
	custom func(m float64) float64
}

// New creates an IMF of a built-in family.
func New(family Family, lower, upper float64) (*IMF, error) {
	if family != Salpeter && family != Kroupa {
		return nil, fmt.Errorf("%w: %s", ErrUnrecognizedIMF, family)
	}

	if err := checkRange(lower, upper); err != nil {
		return nil, err
	}

	return &IMF{family: family, lower: lower, upper: upper}, nil
}

// NewCustom creates an IMF from a caller-supplied function of mass. The
// function is only ever integrated numerically.
func NewCustom(f func(m float64) float64, lower, upper float64) (*IMF, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: custom IMF without a function",
			ErrUnrecognizedIMF)
	}

	if err := checkRange(lower, upper); err != nil {
		return nil, err
	}

	return &IMF{family: Custom, lower: lower, upper: upper, custom: f}, nil
}

func checkRange(lower, upper float64) error {
	if !(lower > 0) || !(upper > lower) || math.IsInf(upper, 0) {
		return fmt.Errorf("%w: [%g, %g]", ErrBadMassRange, lower, upper)
	}

	return nil
}

// Family returns the functional form of the IMF.
func (f *IMF) Family() Family {
	return f.family
}

// Lower returns the lower mass limit of star formation.
func (f *IMF) Lower() float64 {
	return f.lower
}

// Upper returns the upper mass limit of star formation.
func (f *IMF) Upper() float64 {
	return f.upper
}

// Evaluate returns the IMF density at mass m. Masses outside [Lower, Upper]
// give zero; negative custom values are clipped to zero.
func (f *IMF) Evaluate(m float64) (float64, error) {
	if f.family != Salpeter && f.family != Kroupa && f.family != Custom {
		return 0, fmt.Errorf("%w: %s", ErrUnrecognizedIMF, f.family)
	}

	if m < f.lower || m > f.upper {
		return 0, nil
	}

	switch f.family {
	case Salpeter:
		return math.Pow(m, -SalpeterIndex), nil
	case Kroupa:
		return kroupa(m), nil
	default:
		return math.Max(f.custom(m), 0), nil
	}
}

// MustEvaluate is Evaluate for callers that already validated the family.
func (f *IMF) MustEvaluate(m float64) float64 {
	v, err := f.Evaluate(m)
	if err != nil {
		panic(err)
	}

	return v
}

func kroupa(m float64) float64 {
	switch {
	case m < KroupaBreakLow:
		return math.Pow(m, -KroupaIndexLow)
	case m <= KroupaBreakHigh:
		return KroupaPrefactorMid * math.Pow(m, -KroupaIndexMid)
	default:
		return KroupaPrefactorHigh * math.Pow(m, -KroupaIndexHigh)
	}
}
