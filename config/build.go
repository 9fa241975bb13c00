package config

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/interp"

	"github.com/sarchlab/chemevo/imf"
	"github.com/sarchlab/chemevo/ism"
	"github.com/sarchlab/chemevo/multizone"
	"github.com/sarchlab/chemevo/ssp"
	"github.com/sarchlab/chemevo/yields"
	"github.com/sarchlab/chemevo/zone"
)

// Build turns f into a function of time.
func (f *Func) Build() (ism.Func, error) {
	set := 0
	if f.Constant != nil {
		set++
	}
	if f.Exponential != nil {
		set++
	}
	if len(f.Times) > 0 || len(f.Values) > 0 {
		set++
	}

	if set != 1 {
		return nil, fmt.Errorf("%w: a function needs exactly one of "+
			"constant, exponential or times/values", ErrInvalidConfig)
	}

	switch {
	case f.Constant != nil:
		return ism.Constant(*f.Constant), nil
	case f.Exponential != nil:
		return f.Exponential.build()
	default:
		return tabulated(f.Times, f.Values)
	}
}

func (e *Exponential) build() (ism.Func, error) {
	if e.Timescale <= 0 {
		return nil, fmt.Errorf("%w: exponential timescale %g",
			ErrInvalidConfig, e.Timescale)
	}

	a, tau, delayed := e.Amplitude, e.Timescale, e.Delayed

	return func(t float64) float64 {
		v := a * math.Exp(-t/tau)
		if delayed {
			v *= t
		}

		return v
	}, nil
}

// tabulated interpolates linearly between the points and holds the end
// values outside them.
func tabulated(times, values []float64) (ism.Func, error) {
	if len(times) != len(values) || len(times) < 2 {
		return nil, fmt.Errorf("%w: %d times and %d values",
			ErrInvalidConfig, len(times), len(values))
	}

	var pl interp.PiecewiseLinear
	if err := pl.Fit(times, values); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return pl.Predict, nil
}

func requiredFunc(f *Func, name string) (ism.Func, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: missing %s", ErrInvalidConfig, name)
	}

	return f.Build()
}

// optionalFunc returns nil for an absent f.
func optionalFunc(f *Func, name string) (ism.Func, error) {
	if f == nil {
		return nil, nil
	}

	g, err := f.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return g, nil
}

// Build creates the gas evolution.
func (e *Evolution) Build() (ism.Evolution, error) {
	tau, err := requiredFunc(e.TauStar, "tau_star")
	if err != nil {
		return nil, err
	}

	eta, err := optionalFunc(e.Eta, "eta")
	if err != nil {
		return nil, err
	}

	enh, err := optionalFunc(e.Enhancement, "enhancement")
	if err != nil {
		return nil, err
	}

	switch e.Mode {
	case "infall", "":
		ifr, err := requiredFunc(e.IFR, "ifr")
		if err != nil {
			return nil, err
		}

		return ism.InfallMode{
			IFR:         ifr,
			TauStar:     tau,
			Eta:         eta,
			Enhancement: enh,
			InitialGas:  e.InitialGas,
		}, nil
	case "sfr":
		sfr, err := requiredFunc(e.SFR, "sfr")
		if err != nil {
			return nil, err
		}

		return ism.SFRMode{
			SFR:         sfr,
			TauStar:     tau,
			Eta:         eta,
			Enhancement: enh,
		}, nil
	case "gas":
		gas, err := requiredFunc(e.Gas, "gas")
		if err != nil {
			return nil, err
		}

		return ism.GasMode{
			Gas:         gas,
			TauStar:     tau,
			Eta:         eta,
			Enhancement: enh,
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, e.Mode)
	}
}

// override returns p with the fields set in o replaced.
func (p Population) override(o *Population) Population {
	if o == nil {
		return p
	}

	if o.IMF != "" {
		p.IMF = o.IMF
	}
	if o.LowerMass != 0 {
		p.LowerMass = o.LowerMass
	}
	if o.UpperMass != 0 {
		p.UpperMass = o.UpperMass
	}
	if o.PostMS != 0 {
		p.PostMS = o.PostMS
	}
	if o.Recycling != "" {
		p.Recycling = o.Recycling
	}
	if o.R0 != 0 {
		p.R0 = o.R0
	}

	return p
}

// Build creates the stellar population.
func (p *Population) Build() (*ssp.Population, error) {
	family, err := imf.Parse(p.IMF)
	if err != nil {
		return nil, err
	}

	f, err := imf.New(family, p.LowerMass, p.UpperMass)
	if err != nil {
		return nil, err
	}

	pop := ssp.NewPopulation(f)
	pop.PostMS = p.PostMS

	switch p.Recycling {
	case "continuous", "":
	case "instantaneous":
		pop.Recycling = ssp.Instantaneous{R0: p.R0}
	default:
		return nil, fmt.Errorf("%w: unknown recycling %q",
			ErrInvalidConfig, p.Recycling)
	}

	return pop, nil
}

func (c *CCSNe) build() (yields.CCSNeModel, error) {
	if c.Constant != nil {
		if len(c.Z) > 0 {
			return nil, fmt.Errorf("%w: ccsne is constant and tabulated",
				ErrInvalidConfig)
		}

		return yields.ConstantCCSNe(*c.Constant), nil
	}

	if len(c.Z) == 0 {
		return nil, nil
	}

	return yields.NewInterp1D(c.Z, c.Yields)
}

func (d *DTD) build() (yields.DTD, error) {
	switch d.Kind {
	case "powerlaw", "":
		return yields.PowerLawDTD{Index: d.Index, MinDelay: d.MinDelay}, nil
	case "exponential":
		return yields.ExponentialDTD{
			Timescale: d.Timescale,
			MinDelay:  d.MinDelay,
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown dtd %q", ErrInvalidConfig, d.Kind)
	}
}

// Build creates an element with its own yield tables.
func (e *Element) Build() (zone.Element, error) {
	settings := &yields.Settings{}

	ccsne, err := e.CCSNe.build()
	if err != nil {
		return zone.Element{}, fmt.Errorf("element %s: %w", e.Symbol, err)
	}
	settings.CCSNeModel = ccsne

	if e.AGB != nil {
		grid, err := yields.NewAGBGrid(e.AGB.Masses, e.AGB.Metallicities,
			e.AGB.Yields)
		if err != nil {
			return zone.Element{}, fmt.Errorf("element %s: %w", e.Symbol, err)
		}

		settings.AGBModel = grid
	}

	if e.SNeIa != nil {
		dtd, err := e.SNeIa.DTD.build()
		if err != nil {
			return zone.Element{}, fmt.Errorf("element %s: %w", e.Symbol, err)
		}

		settings.SNeIaYield = e.SNeIa.Yield
		settings.DTD = dtd
	}

	el := zone.NewElement(e.Symbol, e.Solar, settings)
	el.InitialMass = e.InitialMass
	el.Escape = zone.Escape{
		CCSNe: e.Escape.CCSNe,
		SNeIa: e.Escape.SNeIa,
		AGB:   e.Escape.AGB,
	}

	if e.InfallZ != nil {
		zin, err := e.InfallZ.Build()
		if err != nil {
			return zone.Element{}, fmt.Errorf("element %s: %w", e.Symbol, err)
		}

		el.Zin = zin
	}

	return el, nil
}

// BuildZone creates the i-th zone, not yet set up.
func (r *Run) BuildZone(i int) (*zone.Zone, error) {
	zc := &r.Zones[i]

	popConfig := r.Population.override(zc.Population)

	pop, err := popConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("zone %s: %w", zc.Name, err)
	}

	evolution, err := zc.Evolution.Build()
	if err != nil {
		return nil, fmt.Errorf("zone %s: %w", zc.Name, err)
	}

	elements := make([]zone.Element, len(r.Elements))
	for j := range r.Elements {
		elements[j], err = r.Elements[j].Build()
		if err != nil {
			return nil, fmt.Errorf("zone %s: %w", zc.Name, err)
		}
	}

	b := zone.MakeBuilder().
		WithName(zc.Name).
		WithTimestep(r.Timestep).
		WithPopulation(pop).
		WithEvolution(evolution).
		WithElements(elements...)

	if len(r.Bins) > 0 {
		b = b.WithBins(r.Bins)
	}

	return b.Build(), nil
}

// BuildZones creates every zone.
func (r *Run) BuildZones() ([]*zone.Zone, error) {
	zones := make([]*zone.Zone, len(r.Zones))

	for i := range r.Zones {
		z, err := r.BuildZone(i)
		if err != nil {
			return nil, err
		}

		zones[i] = z
	}

	return zones, nil
}

// BuildMultizone creates the multizone model with all the zones.
func (r *Run) BuildMultizone() (*multizone.Multizone, error) {
	zones, err := r.BuildZones()
	if err != nil {
		return nil, err
	}

	strategy, err := multizone.ParseStrategy(r.Strategy)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	opts := []multizone.Option{
		multizone.WithName(r.Name),
		multizone.WithTracersPerZone(r.TracersPerZone),
		multizone.WithSeed(r.Seed),
		multizone.WithStrategy(strategy),
		multizone.WithVerbose(r.Verbose),
	}

	if r.MaxTracers > 0 {
		opts = append(opts, multizone.WithMaxTracers(r.MaxTracers))
	}

	matrix := multizone.MigrationMatrix{
		Gas:     r.Migration.Gas,
		Tracers: r.Migration.Tracers,
	}

	return multizone.New(zones, matrix, opts...), nil
}
