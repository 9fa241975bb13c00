package ssp

import (
	"fmt"

	"github.com/sarchlab/chemevo/imf"
	"github.com/sarchlab/chemevo/quadrature"
)

// DefaultPostMS is the default ratio of post main sequence to main sequence
// lifetimes.
const DefaultPostMS = 0.1

// DefaultR0 is the default return fraction for instantaneous recycling.
const DefaultR0 = 0.4

// Recycling is the way a population returns mass to the gas. It is either
// Continuous or Instantaneous.
type Recycling interface {
	isRecycling()
}

// Continuous recycling returns mass following the cumulative return fraction.
type Continuous struct{}

// Instantaneous recycling returns the fraction R0 of newly formed stars within
// the same timestep.
type Instantaneous struct {
	R0 float64
}

func (Continuous) isRecycling()    {}
func (Instantaneous) isRecycling() {}

// QuadratureSettings control the numerical integration of Custom IMFs. Zero
// fields fall back to the quadrature package defaults.
type QuadratureSettings struct {
	Tolerance float64
	Method    quadrature.Method
	NMin      int
	NMax      int
}

// DefaultQuadratureSettings returns the settings used when a population does
// not specify any.
func DefaultQuadratureSettings() QuadratureSettings {
	return QuadratureSettings{
		Tolerance: quadrature.DefaultTolerance,
		Method:    quadrature.Simpson,
		NMin:      quadrature.DefaultNMin,
		NMax:      quadrature.DefaultNMax,
	}
}

// A Population describes the stars formed in one timestep of one zone.
type Population struct {
	IMF        *imf.IMF
	PostMS     float64
	Recycling  Recycling
	Quadrature QuadratureSettings
}

// NewPopulation returns a continuously recycling population with default
// lifetimes and quadrature settings.
func NewPopulation(f *imf.IMF) *Population {
	return &Population{
		IMF:        f,
		PostMS:     DefaultPostMS,
		Recycling:  Continuous{},
		Quadrature: DefaultQuadratureSettings(),
	}
}

// IsContinuous reports whether the population recycles continuously.
func (p *Population) IsContinuous() bool {
	_, ok := p.Recycling.(Continuous)
	return ok
}

// Validate checks the population parameters.
func (p *Population) Validate() error {
	if p.IMF == nil {
		return fmt.Errorf("%w: nil IMF", ErrBadPopulation)
	}

	if p.PostMS < 0 {
		return fmt.Errorf("%w: negative post main sequence ratio %g",
			ErrBadPopulation, p.PostMS)
	}

	switch r := p.Recycling.(type) {
	case Continuous:
	case Instantaneous:
		if r.R0 < 0 || r.R0 > 1 {
			return fmt.Errorf("%w: R0 %g outside [0, 1]", ErrBadPopulation, r.R0)
		}
	default:
		return fmt.Errorf("%w: unknown recycling mode %T", ErrBadPopulation,
			p.Recycling)
	}

	return nil
}

func (p *Population) integral(
	f func(m float64) float64,
	a, b float64,
) quadrature.Integral {
	return quadrature.Integral{
		Func:      f,
		A:         a,
		B:         b,
		Tolerance: p.Quadrature.Tolerance,
		Method:    p.Quadrature.Method,
		NMin:      p.Quadrature.NMin,
		NMax:      p.Quadrature.NMax,
	}
}
