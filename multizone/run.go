package multizone

import (
	"log"

	"github.com/sarchlab/chemevo/output"
)

// Run evolves the zones to the last output time. The history of every zone is
// written whenever the first zone reaches an output time. At the end the
// MDFs are rebuilt from the tracers and written along with the tracers. The
// sink is closed when Run returns, keeping whatever was written if the run
// fails.
func (m *Multizone) Run(sink output.Sink) (err error) {
	if !m.ready {
		log.Panicf("multizone %s: run before setup", m.name)
	}

	defer func() {
		if cerr := sink.Close(); err == nil {
			err = cerr
		}
	}()

	lead := m.zones[0]
	for !lead.Done() {
		if lead.OutputDue() {
			if err := m.writeHistory(sink); err != nil {
				return err
			}
		}

		if err := m.Step(); err != nil {
			return err
		}
	}

	return m.finalize(sink)
}

func (m *Multizone) writeHistory(sink output.Sink) error {
	for i, z := range m.zones {
		if err := sink.WriteHistory(z.History(m.StellarMass(i))); err != nil {
			return err
		}
	}

	return nil
}

func (m *Multizone) finalize(sink output.Sink) error {
	if m.verbose {
		log.Printf("multizone %s: computing distribution functions", m.name)
	}

	m.TracerMDF()

	for _, z := range m.zones {
		if err := z.Finalize(sink); err != nil {
			return err
		}
	}

	if m.verbose {
		log.Printf("multizone %s: saving %d star particles",
			m.name, m.pool.Len())
	}

	return m.writeTracers(sink)
}

// TracerMDF rebuilds the MDF of every zone from the tracers that end up in
// it, binned by the abundances of the gas they formed from.
func (m *Multizone) TracerMDF() {
	for _, z := range m.zones {
		z.MDF().Reset()
	}

	onH := make([]float64, m.zones[0].NumElements())

	for i := 0; i < m.pool.Len(); i++ {
		t := m.pool.At(i)
		origin := m.zones[t.ZoneOrigin]

		for e := range onH {
			onH[e] = origin.Element(e).OnH(t.TimestepOrigin)
		}

		m.zones[t.ZoneCurrent].MDF().Add(onH, t.Mass)
	}
}

// TracerRecords returns the tracers formed up to the last output time.
func (m *Multizone) TracerRecords() []output.TracerRecord {
	symbols := m.zones[0].Symbols()

	var records []output.TracerRecord
	for i := 0; i < m.pool.Len(); i++ {
		t := m.pool.At(i)
		origin := m.zones[t.ZoneOrigin]

		formed := float64(t.TimestepOrigin) * origin.Dt()
		if formed > origin.LastOutputTime() {
			continue
		}

		z := make([]float64, len(symbols))
		for e := range z {
			z[e] = origin.Element(e).Z[t.TimestepOrigin]
		}

		records = append(records, output.TracerRecord{
			FormationTime: formed,
			ZoneOrigin:    t.ZoneOrigin,
			ZoneFinal:     t.ZoneCurrent,
			Mass:          t.Mass,
			Elements:      symbols,
			Z:             z,
		})
	}

	return records
}

func (m *Multizone) writeTracers(sink output.Sink) error {
	for _, r := range m.TracerRecords() {
		if err := sink.WriteTracer(r); err != nil {
			return err
		}
	}

	return nil
}
