package ssp

import (
	"fmt"
	"math"

	"github.com/sarchlab/chemevo/imf"
	"github.com/sarchlab/chemevo/quadrature"
)

// A segment is one power-law piece of an analytic IMF, already clipped to the
// mass range of star formation.
type segment struct {
	lower, upper float64
	index        float64
	prefactor    float64
}

func analyticSegments(f *imf.IMF) []segment {
	var pieces []segment

	switch f.Family() {
	case imf.Salpeter:
		pieces = []segment{
			{0, math.Inf(1), imf.SalpeterIndex, 1},
		}
	case imf.Kroupa:
		pieces = []segment{
			{0, imf.KroupaBreakLow, imf.KroupaIndexLow, 1},
			{imf.KroupaBreakLow, imf.KroupaBreakHigh, imf.KroupaIndexMid,
				imf.KroupaPrefactorMid},
			{imf.KroupaBreakHigh, math.Inf(1), imf.KroupaIndexHigh,
				imf.KroupaPrefactorHigh},
		}
	default:
		return nil
	}

	clipped := make([]segment, 0, len(pieces))
	for _, s := range pieces {
		s.lower = math.Max(s.lower, f.Lower())
		s.upper = math.Min(s.upper, f.Upper())
		if s.upper > s.lower {
			clipped = append(clipped, s)
		}
	}

	return clipped
}

// integrator evaluates the CRF and MSMF integrals of one population. The
// shared denominator is computed once.
type integrator struct {
	pop         *Population
	segments    []segment
	denominator float64
	converged   bool
}

func newIntegrator(pop *Population) (*integrator, error) {
	if err := pop.Validate(); err != nil {
		return nil, err
	}

	g := &integrator{pop: pop, converged: true}

	switch pop.IMF.Family() {
	case imf.Salpeter, imf.Kroupa:
		g.segments = analyticSegments(pop.IMF)
		for _, s := range g.segments {
			g.denominator += s.prefactor * massInRange(s.upper, s.lower, s.index)
		}
	case imf.Custom:
		d, err := g.integrate(g.massIntegrand, pop.IMF.Lower(), pop.IMF.Upper())
		if err != nil {
			return nil, err
		}
		g.denominator = d
	default:
		return nil, fmt.Errorf("%w: %s", imf.ErrUnrecognizedIMF,
			pop.IMF.Family())
	}

	return g, nil
}

func (g *integrator) massIntegrand(m float64) float64 {
	return m * g.pop.IMF.MustEvaluate(m)
}

func (g *integrator) returnedIntegrand(m float64) float64 {
	return (m - RemnantMass(m)) * g.pop.IMF.MustEvaluate(m)
}

func (g *integrator) integrate(
	f func(float64) float64,
	a, b float64,
) (float64, error) {
	res, err := quadrature.Integrate(g.pop.integral(f, a, b))
	if err != nil {
		return 0, err
	}

	if !res.Converged {
		g.converged = false
	}

	return res.Value, nil
}

// returned is the CRF numerator: the mass returned by every star above the
// turnoff mass, up to the IMF normalization.
func (g *integrator) returned(turnoff float64) (float64, error) {
	upper := g.pop.IMF.Upper()
	if turnoff > upper {
		return 0, nil
	}

	if g.pop.IMF.Family() == imf.Custom {
		return g.returnedNumerically(turnoff)
	}

	total := 0.0
	for _, s := range g.segments {
		total += s.prefactor *
			returnedInRange(s.upper, turnoff, s.lower, s.index)
	}

	return total, nil
}

// returnedNumerically splits the integral at the remnant break, where the
// remnant mass relation is discontinuous.
func (g *integrator) returnedNumerically(turnoff float64) (float64, error) {
	lower := math.Max(turnoff, g.pop.IMF.Lower())
	upper := g.pop.IMF.Upper()
	total := 0.0

	if lower < remnantBreakMass {
		v, err := g.integrate(g.returnedIntegrand,
			lower, math.Min(remnantBreakMass, upper))
		if err != nil {
			return 0, err
		}
		total += v
	}

	if upper > remnantBreakMass {
		v, err := g.integrate(g.returnedIntegrand,
			math.Max(lower, remnantBreakMass), upper)
		if err != nil {
			return 0, err
		}
		total += v
	}

	return total, nil
}

// mainSequence is the MSMF numerator: the initial mass of every star below
// the turnoff mass, up to the IMF normalization.
func (g *integrator) mainSequence(turnoff float64) (float64, error) {
	lower := g.pop.IMF.Lower()

	switch {
	case turnoff > g.pop.IMF.Upper():
		return g.denominator, nil
	case turnoff < lower:
		return 0, nil
	case g.pop.IMF.Family() == imf.Custom:
		return g.integrate(g.massIntegrand, lower, turnoff)
	}

	total := 0.0
	for _, s := range g.segments {
		if s.lower >= turnoff {
			continue
		}
		total += s.prefactor *
			massInRange(math.Min(turnoff, s.upper), s.lower, s.index)
	}

	return total, nil
}

func (g *integrator) crf(t float64) (float64, error) {
	v, err := g.returned(TurnoffMass(t, g.pop.PostMS))
	if err != nil {
		return 0, err
	}

	return v / g.denominator, nil
}

func (g *integrator) msmf(t float64) (float64, error) {
	v, err := g.mainSequence(TurnoffMass(t, g.pop.PostMS))
	if err != nil {
		return 0, err
	}

	return v / g.denominator, nil
}

// Denominator returns the total initial mass of the population, up to the
// IMF normalization. It is shared by the CRF and the MSMF.
func Denominator(pop *Population) (float64, error) {
	g, err := newIntegrator(pop)
	if err != nil {
		return 0, err
	}

	return g.denominator, nil
}

// CRF returns the cumulative return fraction of the population at age t in
// Gyr.
func CRF(pop *Population, t float64) (float64, error) {
	g, err := newIntegrator(pop)
	if err != nil {
		return 0, err
	}

	return g.crf(t)
}

// MSMF returns the main sequence mass fraction of the population at age t in
// Gyr.
func MSMF(pop *Population, t float64) (float64, error) {
	g, err := newIntegrator(pop)
	if err != nil {
		return 0, err
	}

	return g.msmf(t)
}
