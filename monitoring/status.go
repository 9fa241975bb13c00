package monitoring

import (
	"math"

	"github.com/sarchlab/chemevo/multizone"
	"github.com/sarchlab/chemevo/zone"
)

// Abundance is the amount of one element in the gas of a zone. OnH is nil
// while the element is absent.
type Abundance struct {
	Symbol string   `json:"symbol"`
	Z      float64  `json:"z"`
	OnH    *float64 `json:"on_h"`
}

// ZoneStatus is a copy of the state of a zone after a timestep.
type ZoneStatus struct {
	Name        string      `json:"name"`
	Time        float64     `json:"time"`
	Timestep    int         `json:"timestep"`
	GasMass     float64     `json:"gas_mass"`
	StellarMass float64     `json:"stellar_mass"`
	SFR         float64     `json:"sfr"`
	IFR         float64     `json:"ifr"`
	OFR         float64     `json:"ofr"`
	Recycled    float64     `json:"recycled"`
	Abundances  []Abundance `json:"abundances"`
}

// Status is what the monitor knows about a run.
type Status struct {
	Run      string       `json:"run"`
	Time     float64      `json:"time"`
	Timestep int          `json:"timestep"`
	Tracers  int          `json:"tracers"`
	Zones    []ZoneStatus `json:"zones"`
}

func zoneStatus(z *zone.Zone, stellarMass float64) ZoneStatus {
	h := z.History(stellarMass)

	s := ZoneStatus{
		Name:        h.Zone,
		Time:        h.Time,
		Timestep:    z.Timestep(),
		GasMass:     h.GasMass,
		StellarMass: h.StellarMass,
		SFR:         h.SFR,
		IFR:         h.IFR,
		OFR:         h.OFR,
		Recycled:    h.Recycled,
		Abundances:  make([]Abundance, len(h.Elements)),
	}

	for i, e := range h.Elements {
		s.Abundances[i] = Abundance{Symbol: e.Symbol, Z: e.Z}

		if !math.IsInf(e.OnH, 0) && !math.IsNaN(e.OnH) {
			onH := e.OnH
			s.Abundances[i].OnH = &onH
		}
	}

	return s
}

// MultizoneStatus captures the state of a multizone run.
func MultizoneStatus(m *multizone.Multizone) Status {
	s := Status{
		Run:     m.Name(),
		Time:    m.CurrentTime(),
		Tracers: m.Tracers().Len(),
	}

	for i, z := range m.Zones() {
		s.Timestep = z.Timestep()
		s.Zones = append(s.Zones, zoneStatus(z, m.StellarMass(i)))
	}

	return s
}

// ZoneRunStatus captures the state of a one-zone run.
func ZoneRunStatus(z *zone.Zone) Status {
	return Status{
		Run:      z.Name(),
		Time:     z.CurrentTime(),
		Timestep: z.Timestep(),
		Zones:    []ZoneStatus{zoneStatus(z, z.StellarMass())},
	}
}
