package yields

import (
	"fmt"
	"math"
)

// DTDHorizon is the age in Gyr over which delay time distributions are
// normalized: a population releases its full type Ia yield by this age.
const DTDHorizon = 15.0

// A DTD is an unnormalized type Ia supernova delay time distribution.
type DTD interface {
	// Rate returns the relative rate at age t in Gyr.
	Rate(t float64) float64
}

// PowerLawDTD is a t^-Index distribution that switches on after MinDelay.
type PowerLawDTD struct {
	Index    float64
	MinDelay float64
}

// Rate implements DTD.
func (d PowerLawDTD) Rate(t float64) float64 {
	if t < d.MinDelay || t <= 0 {
		return 0
	}

	return math.Pow(t, -d.Index)
}

// ExponentialDTD decays with e-folding Timescale after MinDelay.
type ExponentialDTD struct {
	Timescale float64
	MinDelay  float64
}

// Rate implements DTD.
func (d ExponentialDTD) Rate(t float64) float64 {
	if t < d.MinDelay {
		return 0
	}

	return math.Exp(-(t - d.MinDelay) / d.Timescale)
}

// Tabulate returns the fraction of the type Ia events of a population that
// happen during each of n timesteps of size dt, normalized to one over
// DTDHorizon.
func Tabulate(d DTD, dt float64, n int) ([]float64, error) {
	if !(dt > 0) || n <= 0 {
		return nil, fmt.Errorf("%w: n=%d dt=%g", ErrBadDTD, n, dt)
	}

	ria := make([]float64, n)
	for i := range ria {
		ria[i] = d.Rate((float64(i)+0.5)*dt) * dt
	}

	norm := 0.0
	steps := int(math.Ceil(DTDHorizon / dt))
	for i := 0; i < steps; i++ {
		norm += d.Rate((float64(i)+0.5)*dt) * dt
	}

	if !(norm > 0) || math.IsInf(norm, 0) {
		return nil, fmt.Errorf("%w: rate does not normalize", ErrBadDTD)
	}

	for i := range ria {
		ria[i] /= norm
	}

	return ria, nil
}
