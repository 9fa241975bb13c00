// Package zone evolves a single well-mixed reservoir of gas and stars one
// timestep at a time. A Zone forms stars, enriches its gas with the yields of
// its elements, and records the abundance history and the stellar
// metallicity distribution function.
package zone

import (
	"fmt"
	"log"
	"math"
	"sort"

	"github.com/sarchlab/chemevo/ism"
	"github.com/sarchlab/chemevo/mdf"
	"github.com/sarchlab/chemevo/sim"
	"github.com/sarchlab/chemevo/ssp"
)

// MaxTimesteps bounds the number of timesteps a zone allocates for.
const MaxTimesteps = 1 << 24

// Margin is the number of timesteps allocated past the last output time.
const Margin = 10

// State is the lifecycle state of a zone.
type State int

// The states of a zone, in lifecycle order.
const (
	Uninitialized State = iota
	Ready
	Running
	Finalizing
	Closed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Ready:
		return "ready"
	case Running:
		return "running"
	case Finalizing:
		return "finalizing"
	case Closed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var (
	// HookPosZoneStepStart is invoked before a zone advances a timestep.
	HookPosZoneStepStart = &sim.HookPos{Name: "Zone Step Start"}

	// HookPosZoneStepEnd is invoked after a zone advances a timestep.
	HookPosZoneStepEnd = &sim.HookPos{Name: "Zone Step End"}
)

// Zone is a single well-mixed reservoir.
type Zone struct {
	*sim.HookableBase

	name  string
	state State

	dt          float64
	timestep    int
	currentTime float64

	ism       ism.State
	evolution ism.Evolution
	elements  []Element

	pop    *ssp.Population
	tables *ssp.Tables

	bins []float64
	mdf  *mdf.MDF

	outputTimes []float64
	nextOutput  int

	recycled float64
}

// Name returns the name of the zone.
func (z *Zone) Name() string {
	return z.name
}

// State returns the lifecycle state.
func (z *Zone) State() State {
	return z.state
}

// CurrentTime returns the time in Gyr.
func (z *Zone) CurrentTime() sim.Gyr {
	return z.currentTime
}

// Timestep returns the number of timesteps taken.
func (z *Zone) Timestep() int {
	return z.timestep
}

// Dt returns the timestep size in Gyr.
func (z *Zone) Dt() float64 {
	return z.dt
}

// ISM returns the gas reservoir.
func (z *Zone) ISM() *ism.State {
	return &z.ism
}

// NumElements returns the number of tracked elements.
func (z *Zone) NumElements() int {
	return len(z.elements)
}

// Element returns the i-th element.
func (z *Zone) Element(i int) *Element {
	return &z.elements[i]
}

// Symbols returns the element symbols in order.
func (z *Zone) Symbols() []string {
	symbols := make([]string, len(z.elements))
	for i := range z.elements {
		symbols[i] = z.elements[i].Symbol
	}

	return symbols
}

// Population returns the stellar population parameters.
func (z *Zone) Population() *ssp.Population {
	return z.pop
}

// Tables returns the CRF and MSMF tables. They are nil before Setup.
func (z *Zone) Tables() *ssp.Tables {
	return z.tables
}

// MDF returns the metallicity distribution accumulator.
func (z *Zone) MDF() *mdf.MDF {
	return z.mdf
}

// OutputTimes returns the sorted output times.
func (z *Zone) OutputTimes() []float64 {
	return z.outputTimes
}

// LastOutputTime returns the final output time.
func (z *Zone) LastOutputTime() float64 {
	return z.outputTimes[len(z.outputTimes)-1]
}

// Recycled returns the gas returned by stars during the last timestep.
func (z *Zone) Recycled() float64 {
	return z.recycled
}

// Setup validates the zone, sizes every per-timestep array for a run ending
// at the last of outputTimes, and builds the CRF and MSMF tables.
func (z *Zone) Setup(outputTimes []float64) error {
	if z.state != Uninitialized {
		log.Panicf("zone %s: setup in state %s", z.name, z.state)
	}

	n, err := z.runLength(outputTimes)
	if err != nil {
		return err
	}

	if err := z.validate(); err != nil {
		return err
	}

	tables, err := ssp.BuildTables(z.pop, z.dt, n)
	if err != nil {
		return fmt.Errorf("zone %s: %w", z.name, err)
	}

	if err := z.evolution.Setup(&z.ism, z.dt, n); err != nil {
		return fmt.Errorf("zone %s: %w", z.name, err)
	}

	for i := range z.elements {
		e := &z.elements[i]

		if err := e.Yields.Setup(z.dt, n); err != nil {
			return fmt.Errorf("zone %s: element %s: %w", z.name, e.Symbol, err)
		}

		e.Mass = e.InitialMass
		e.Z = make([]float64, n)
		e.Z[0] = e.Mass / z.ism.Mass
	}

	m, err := mdf.New(z.bins, z.Symbols())
	if err != nil {
		return fmt.Errorf("zone %s: %w", z.name, err)
	}

	z.tables = tables
	z.mdf = m
	z.timestep = 0
	z.currentTime = 0
	z.nextOutput = 0
	z.recycled = 0
	z.state = Ready

	return nil
}

func (z *Zone) runLength(outputTimes []float64) (int, error) {
	if !(z.dt > 0) || math.IsInf(z.dt, 0) {
		return 0, fmt.Errorf("%w: zone %s: dt=%g", ErrAllocation, z.name, z.dt)
	}

	if len(outputTimes) == 0 {
		return 0, fmt.Errorf("%w: zone %s: no output times",
			ErrAllocation, z.name)
	}

	times := append([]float64(nil), outputTimes...)
	sort.Float64s(times)

	for _, t := range times {
		if !(t >= 0) || math.IsInf(t, 0) {
			return 0, fmt.Errorf("%w: zone %s: output time %g",
				ErrBadParameter, z.name, t)
		}
	}

	steps := times[len(times)-1] / z.dt
	if steps+Margin > MaxTimesteps {
		return 0, fmt.Errorf("%w: zone %s: %g timesteps",
			ErrAllocation, z.name, steps)
	}

	z.outputTimes = times

	return int(steps) + Margin, nil
}

func (z *Zone) validate() error {
	if z.pop == nil {
		return fmt.Errorf("%w: zone %s: no stellar population",
			ErrBadParameter, z.name)
	}

	if err := z.pop.Validate(); err != nil {
		return fmt.Errorf("%w: zone %s: %w", ErrBadParameter, z.name, err)
	}

	if z.evolution == nil {
		return fmt.Errorf("%w: zone %s: no gas evolution",
			ErrBadParameter, z.name)
	}

	seen := make(map[string]bool)
	for i := range z.elements {
		e := &z.elements[i]

		switch {
		case e.Symbol == "" || seen[e.Symbol]:
			return fmt.Errorf("%w: zone %s: element symbol %q",
				ErrBadParameter, z.name, e.Symbol)
		case !(e.Solar > 0):
			return fmt.Errorf("%w: zone %s: solar abundance of %s",
				ErrBadParameter, z.name, e.Symbol)
		case e.Yields == nil:
			return fmt.Errorf("%w: zone %s: no yields for %s",
				ErrBadParameter, z.name, e.Symbol)
		case e.InitialMass < 0:
			return fmt.Errorf("%w: zone %s: initial mass of %s",
				ErrBadParameter, z.name, e.Symbol)
		case !e.Escape.valid():
			return fmt.Errorf("%w: zone %s: escape fractions of %s %+v",
				ErrBadParameter, z.name, e.Symbol, e.Escape)
		}

		seen[e.Symbol] = true
	}

	return nil
}

// StellarMass returns the mass in stars still alive or in remnants.
func (z *Zone) StellarMass() float64 {
	mass := 0.0
	for i := 0; i < z.timestep; i++ {
		mass += z.ism.SFH[z.timestep-i] * z.dt * (1 - z.tables.CRF[i])
	}

	return mass
}
