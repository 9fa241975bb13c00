package zone

import (
	"fmt"
	"log"

	"github.com/sarchlab/chemevo/output"
)

// ShouldWrite decides whether the state at time now is written for the
// output time target: either target has been reached, or now is closer to
// target than the next timestep will be.
func ShouldWrite(now, target, dt float64) bool {
	return now >= target || 2*target < 2*now+dt
}

// Done reports whether the zone has passed its last output time.
func (z *Zone) Done() bool {
	return z.currentTime > z.LastOutputTime()
}

// OutputDue reports whether the current state should be written, and if so
// moves on to the next output time.
func (z *Zone) OutputDue() bool {
	if z.nextOutput >= len(z.outputTimes) {
		return false
	}

	if !ShouldWrite(z.currentTime, z.outputTimes[z.nextOutput], z.dt) {
		return false
	}

	z.nextOutput++

	return true
}

// History returns the current state of the zone. The stellar mass is passed
// in since multizone runs count it from tracers.
func (z *Zone) History(stellarMass float64) output.History {
	h := output.History{
		Zone:        z.name,
		Time:        z.currentTime,
		GasMass:     z.ism.Mass,
		StellarMass: stellarMass,
		SFR:         z.ism.SFR,
		IFR:         z.ism.IFR,
		OFR:         z.ism.OFR,
		Recycled:    z.recycled,
		Elements:    make([]output.ElementHistory, len(z.elements)),
	}

	for i := range z.elements {
		e := &z.elements[i]
		h.Elements[i] = output.ElementHistory{
			Symbol: e.Symbol,
			Mass:   e.Mass,
			Z:      e.Z[z.timestep],
			OnH:    e.OnH(z.timestep),

			Unretained: e.Unretained,
		}
	}

	return h
}

// MDFOutput returns the MDF in output form.
func (z *Zone) MDFOutput() output.MDF {
	m := output.MDF{
		Zone: z.name,
		Bins: z.mdf.Bins,
	}

	for i, symbol := range z.mdf.Elements {
		m.Distributions = append(m.Distributions, output.Distribution{
			Label:   fmt.Sprintf("dN/d[%s/h]", symbol),
			Density: z.mdf.Abundance[i],
		})
	}

	for i, label := range z.mdf.RatioLabels() {
		m.Distributions = append(m.Distributions, output.Distribution{
			Label:   "dN/d" + label,
			Density: z.mdf.Ratio[i],
		})
	}

	return m
}

// Finalize normalizes the MDF, writes it to sink and closes the zone.
func (z *Zone) Finalize(sink output.Sink) error {
	if z.state != Ready && z.state != Running {
		log.Panicf("zone %s: finalize in state %s", z.name, z.state)
	}

	z.state = Finalizing
	z.mdf.Normalize()

	err := sink.WriteMDF(z.MDFOutput())
	z.state = Closed

	return err
}

// Run evolves a set-up zone to its last output time, writing its history at
// the output times and its MDF at the end. The sink is closed when Run
// returns, keeping whatever was written if the run fails.
func (z *Zone) Run(sink output.Sink) (err error) {
	if z.state != Ready {
		log.Panicf("zone %s: run in state %s", z.name, z.state)
	}

	defer func() {
		if cerr := sink.Close(); err == nil {
			err = cerr
		}
	}()

	for !z.Done() {
		if z.OutputDue() {
			err := sink.WriteHistory(z.History(z.StellarMass()))
			if err != nil {
				return err
			}
		}

		if err := z.Step(z.SelfReturned()); err != nil {
			return err
		}
	}

	return z.Finalize(sink)
}
