package zone

import (
	"fmt"
	"log"
	"math"

	"github.com/sarchlab/chemevo/sim"
	"github.com/sarchlab/chemevo/ssp"
)

// Step advances the zone by one timestep. The returned mass r must have been
// computed from the state at the start of the timestep.
//
// The gas is updated first. Each element then gains its yields and the
// returned metals and loses what is locked into stars or blown out, and its
// abundance is stored for the next timestep. The new abundances feed the MDF
// before the clock advances.
func (z *Zone) Step(r Returned) error {
	if z.state != Ready && z.state != Running {
		log.Panicf("zone %s: step in state %s", z.name, z.state)
	}

	if len(r.Metals) != len(z.elements) {
		log.Panicf("zone %s: returned metals for %d elements, have %d",
			z.name, len(r.Metals), len(z.elements))
	}

	if z.timestep+1 >= z.tables.Len() {
		return fmt.Errorf("%w: zone %s: step %d past the %d allocated",
			ErrAllocation, z.name, z.timestep+1, z.tables.Len())
	}

	z.state = Running
	z.InvokeHook(sim.HookCtx{
		Domain: z,
		Pos:    HookPosZoneStepStart,
		Item:   z,
		Detail: z.timestep,
	})

	sfr := z.ism.SFR
	ofr := z.ism.OFR
	enh := z.ism.Enhancement

	if err := z.evolution.Update(&z.ism, r.Gas); err != nil {
		return fmt.Errorf("zone %s at t=%g: %w", z.name, z.currentTime, err)
	}

	z.recycled = r.Gas

	for i := range z.elements {
		e := &z.elements[i]

		kept, lost := z.enrichment(e, sfr, ofr*enh)
		e.Unretained = lost
		e.Mass += kept + r.Metals[i]
		if e.Mass < 0 || math.IsNaN(e.Mass) {
			e.Mass = 0
		}

		e.Z[z.timestep+1] = e.Mass / z.ism.Mass
	}

	z.updateMDF(sfr * z.dt)

	z.timestep++
	z.currentTime = float64(z.timestep) * z.dt

	z.InvokeHook(sim.HookCtx{
		Domain: z,
		Pos:    HookPosZoneStepEnd,
		Item:   z,
		Detail: z.timestep,
	})

	return nil
}

// enrichment is the change in the mass of e during the current timestep,
// excluding recycling, and the produced mass that escaped. sfr is the rate at
// the start of the step and ofr the outflow rate already scaled by the
// enhancement.
func (z *Zone) enrichment(e *Element, sfr, ofr float64) (kept, lost float64) {
	t := z.timestep
	zNow := e.Z[t]

	ccsne := e.Yields.CCSNe(zNow) * sfr * z.dt
	sneia := z.sneia(e)
	agb := z.agb(e)

	lost = ccsne*e.Escape.CCSNe + sneia*e.Escape.SNeIa + agb*e.Escape.AGB

	kept = ccsne + sneia + agb - lost
	kept -= (sfr + ofr) * z.dt * zNow
	kept += z.ism.Inflow * e.infallZ(z.currentTime)

	return kept, lost
}

func (z *Zone) sneia(e *Element) float64 {
	t := z.timestep

	mass := 0.0
	for i := 0; i <= t; i++ {
		mass += z.ism.SFH[t-i] * z.dt * e.Yields.SNeIa(i)
	}

	return mass
}

func (z *Zone) agb(e *Element) float64 {
	t := z.timestep
	postMS := z.pop.PostMS

	mass := 0.0
	for i := 0; i <= t; i++ {
		m := ssp.TurnoffMass(float64(i)*z.dt, postMS)
		if m > ssp.MaxAGBMass {
			continue
		}

		mass += z.ism.SFH[t-i] * z.dt *
			e.Yields.AGB(e.Z[t-i], m) * z.tables.DiedBetween(i)
	}

	return mass
}

func (z *Zone) updateMDF(weight float64) {
	if weight <= 0 {
		return
	}

	onH := make([]float64, len(z.elements))
	for i := range z.elements {
		onH[i] = z.elements[i].OnH(z.timestep + 1)
	}

	z.mdf.Add(onH, weight)
}

// SelfReturned returns the mass returned by the stars that formed in this
// zone, assuming none of them left it.
func (z *Zone) SelfReturned() Returned {
	r := NewReturned(len(z.elements))
	if z.tables == nil || z.timestep+1 >= z.tables.Len() {
		return r
	}

	switch rec := z.pop.Recycling.(type) {
	case ssp.Instantaneous:
		r.Gas = z.ism.SFR * z.dt * rec.R0
		for i := range z.elements {
			r.Metals[i] = r.Gas * z.elements[i].Mass / z.ism.Mass
		}
	default:
		t := z.timestep
		for i := 0; i <= t; i++ {
			m := z.ism.SFH[t-i] * z.dt * z.tables.ReturnedBetween(i)
			r.Gas += m

			for j := range z.elements {
				r.Metals[j] += m * z.elements[j].Z[t-i]
			}
		}
	}

	return r
}
