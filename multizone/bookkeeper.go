package multizone

import (
	"fmt"

	"github.com/sarchlab/chemevo/zone"
)

// Strategy selects how recycling from tracers is summed.
type Strategy int

const (
	// Cohort sums tracer masses per birth timestep, origin zone and current
	// zone, and recycles each cell once.
	Cohort Strategy = iota

	// BruteForce recycles every tracer separately.
	BruteForce
)

func (s Strategy) String() string {
	switch s {
	case Cohort:
		return "cohort"
	case BruteForce:
		return "brute-force"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy maps "cohort" and "brute-force" to strategies.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "cohort", "":
		return Cohort, nil
	case "brute-force", "bruteforce":
		return BruteForce, nil
	default:
		return 0, fmt.Errorf("multizone: unknown recycling strategy %q", name)
	}
}

// bookkeeper computes the mass returned to every zone by the tracers.
type bookkeeper interface {
	spawned(t *Tracer)
	moved(t *Tracer, from int)

	// addReturned adds the recycling of tracers from continuously recycling
	// zones, at timestep step, to r.
	addReturned(zones []*zone.Zone, pool *TracerPool, step int, r []zone.Returned)

	// stellarMass returns the mass of the stars in zone current at timestep
	// step that has not been returned to the gas.
	stellarMass(zones []*zone.Zone, pool *TracerPool, step, current int) float64
}

func newBookkeeper(s Strategy, nZones int) bookkeeper {
	if s == BruteForce {
		return bruteForce{}
	}

	return &cohorts{n: nZones}
}

// returned computes the mass every zone gets back during timestep step.
// Instantaneous zones recycle their own star formation, tracers from
// continuous zones recycle into the zone they are in.
func returned(
	b bookkeeper,
	zones []*zone.Zone,
	pool *TracerPool,
	step int,
) []zone.Returned {
	r := make([]zone.Returned, len(zones))
	for i, z := range zones {
		r[i] = zone.NewReturned(z.NumElements())
	}

	b.addReturned(zones, pool, step, r)

	for i, z := range zones {
		if !z.Population().IsContinuous() {
			r[i].Add(z.SelfReturned())
		}
	}

	return r
}

func recycleInto(
	r *zone.Returned,
	origin *zone.Zone,
	birth int,
	mass float64,
) {
	r.Gas += mass
	for e := range r.Metals {
		r.Metals[e] += mass * origin.Element(e).Z[birth]
	}
}

type bruteForce struct{}

func (bruteForce) spawned(*Tracer)    {}
func (bruteForce) moved(*Tracer, int) {}

func (bruteForce) addReturned(
	zones []*zone.Zone,
	pool *TracerPool,
	step int,
	r []zone.Returned,
) {
	for i := 0; i < pool.Len(); i++ {
		t := pool.At(i)

		origin := zones[t.ZoneOrigin]
		if !origin.Population().IsContinuous() {
			continue
		}

		age := step - t.TimestepOrigin
		mass := t.Mass * origin.Tables().ReturnedBetween(age)
		recycleInto(&r[t.ZoneCurrent], origin, t.TimestepOrigin, mass)
	}
}

func (bruteForce) stellarMass(
	zones []*zone.Zone,
	pool *TracerPool,
	step, current int,
) float64 {
	mass := 0.0
	for i := 0; i < pool.Len(); i++ {
		t := pool.At(i)
		if t.ZoneCurrent != current {
			continue
		}

		mass += t.Mass * remaining(zones[t.ZoneOrigin], step-t.TimestepOrigin)
	}

	return mass
}

// cohorts keeps, for every birth timestep, the tracer mass per origin and
// current zone: cells[birth][origin*n+current].
type cohorts struct {
	n     int
	cells [][]float64
}

func (c *cohorts) cell(t *Tracer, current int) *float64 {
	return &c.cells[t.TimestepOrigin][t.ZoneOrigin*c.n+current]
}

func (c *cohorts) spawned(t *Tracer) {
	for len(c.cells) <= t.TimestepOrigin {
		c.cells = append(c.cells, make([]float64, c.n*c.n))
	}

	*c.cell(t, t.ZoneCurrent) += t.Mass
}

func (c *cohorts) moved(t *Tracer, from int) {
	*c.cell(t, from) -= t.Mass
	*c.cell(t, t.ZoneCurrent) += t.Mass
}

func (c *cohorts) addReturned(
	zones []*zone.Zone,
	_ *TracerPool,
	step int,
	r []zone.Returned,
) {
	for birth, cells := range c.cells {
		age := step - birth

		for o, origin := range zones {
			if !origin.Population().IsContinuous() {
				continue
			}

			f := origin.Tables().ReturnedBetween(age)

			for current := 0; current < c.n; current++ {
				mass := cells[o*c.n+current]
				if mass == 0 {
					continue
				}

				recycleInto(&r[current], origin, birth, mass*f)
			}
		}
	}
}

func (c *cohorts) stellarMass(
	zones []*zone.Zone,
	_ *TracerPool,
	step, current int,
) float64 {
	mass := 0.0
	for birth, cells := range c.cells {
		if birth > step {
			break
		}

		for o, origin := range zones {
			if m := cells[o*c.n+current]; m != 0 {
				mass += m * remaining(origin, step-birth)
			}
		}
	}

	return mass
}

// remaining returns the fraction of the stars formed age timesteps ago in
// origin that have not been returned to the gas.
func remaining(origin *zone.Zone, age int) float64 {
	return 1 - origin.Tables().CRF[age]
}
