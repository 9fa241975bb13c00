package zone

import (
	"log"

	"github.com/sarchlab/chemevo/imf"
	"github.com/sarchlab/chemevo/ism"
	"github.com/sarchlab/chemevo/mdf"
	"github.com/sarchlab/chemevo/sim"
	"github.com/sarchlab/chemevo/ssp"
)

// Builder can build zones.
type Builder struct {
	name      string
	dt        float64
	pop       *ssp.Population
	evolution ism.Evolution
	elements  []Element
	bins      []float64
}

// DefaultEvolution returns an infall-driven reservoir that starts from 6e9
// Msun of gas accreting 9.1e9 Msun/Gyr, forming stars on a 2 Gyr timescale
// with a mass loading factor of 2.5.
func DefaultEvolution() ism.Evolution {
	return ism.InfallMode{
		IFR:        ism.Constant(9.1e9),
		TauStar:    ism.Constant(2),
		Eta:        ism.Constant(2.5),
		InitialGas: 6e9,
	}
}

// MakeBuilder returns a builder with a 10 Myr timestep, a Kroupa IMF,
// continuous recycling and the default gas evolution.
func MakeBuilder() Builder {
	f, err := imf.New(imf.Kroupa, imf.DefaultLowerMass, imf.DefaultUpperMass)
	if err != nil {
		log.Panic(err)
	}

	return Builder{
		name:      "zone",
		dt:        0.01,
		pop:       ssp.NewPopulation(f),
		evolution: DefaultEvolution(),
		bins:      mdf.DefaultBins(),
	}
}

// WithName sets the name of the zone.
func (b Builder) WithName(name string) Builder {
	b.name = name
	return b
}

// WithTimestep sets the timestep size in Gyr.
func (b Builder) WithTimestep(dt float64) Builder {
	b.dt = dt
	return b
}

// WithPopulation sets the stellar population parameters.
func (b Builder) WithPopulation(pop *ssp.Population) Builder {
	b.pop = pop
	return b
}

// WithEvolution sets how the gas evolves.
func (b Builder) WithEvolution(e ism.Evolution) Builder {
	b.evolution = e
	return b
}

// WithElements sets the tracked elements. The zone keeps its own copies.
func (b Builder) WithElements(elements ...Element) Builder {
	b.elements = append([]Element(nil), elements...)
	return b
}

// WithBins sets the bin edges of the MDF.
func (b Builder) WithBins(bins []float64) Builder {
	b.bins = bins
	return b
}

// Build creates an uninitialized zone.
func (b Builder) Build() *Zone {
	var pop *ssp.Population
	if b.pop != nil {
		p := *b.pop
		pop = &p
	}

	return &Zone{
		HookableBase: sim.NewHookableBase(),
		name:         b.name,
		dt:           b.dt,
		pop:          pop,
		evolution:    b.evolution,
		elements:     append([]Element(nil), b.elements...),
		bins:         append([]float64(nil), b.bins...),
	}
}
