package multizone

import (
	"fmt"
	"log"

	"github.com/sarchlab/chemevo/sim"
	"github.com/sarchlab/chemevo/tracing"
	"github.com/sarchlab/chemevo/zone"
)

// Step advances every zone by one timestep: tracers and gas migrate, the new
// stars become tracers, recycling is summed, and then each zone steps with
// the mass returned to it.
func (m *Multizone) Step() error {
	if !m.ready {
		log.Panicf("multizone %s: step before setup", m.name)
	}

	step := m.zones[0].Timestep()
	for _, z := range m.zones {
		if step+1 >= z.Tables().Len() {
			return fmt.Errorf("%w: multizone %s: step %d past the %d allocated",
				zone.ErrAllocation, m.name, step+1, z.Tables().Len())
		}
	}

	id := fmt.Sprintf("%s.step%d", m.name, step)
	tracing.StartTask(id, "", m, "step", "global_step", step)
	defer tracing.EndTask(id, m)

	phase := m.startPhase(id, "migrate")
	m.migrate()
	tracing.EndTask(phase, m)

	phase = m.startPhase(id, "spawn")
	err := m.spawn()
	tracing.EndTask(phase, m)

	if err != nil {
		return err
	}

	phase = m.startPhase(id, "recycle")
	r := returned(m.bookkeeper, m.zones, m.pool, step)
	tracing.EndTask(phase, m)

	m.InvokeHook(sim.HookCtx{
		Domain: m,
		Pos:    HookPosRecycle,
		Item:   m,
		Detail: r,
	})

	if err := m.stepZones(id, r); err != nil {
		return err
	}

	m.InvokeHook(sim.HookCtx{
		Domain: m,
		Pos:    HookPosGlobalStep,
		Item:   m,
		Detail: m.zones[0].Timestep(),
	})

	return nil
}

func (m *Multizone) startPhase(parentID, what string) string {
	id := parentID + "." + what
	tracing.StartTask(id, parentID, m, "phase", what, nil)

	return id
}

func (m *Multizone) stepZones(parentID string, r []zone.Returned) error {
	phase := m.startPhase(parentID, "zones")
	defer tracing.EndTask(phase, m)

	for i, z := range m.zones {
		tracing.AddTaskStep(phase, m, z.Name())

		if err := z.Step(r[i]); err != nil {
			return fmt.Errorf("multizone %s: %w", m.name, err)
		}
	}

	return nil
}

func (m *Multizone) migrate() {
	step := m.zones[0].Timestep()

	for i := 0; i < m.pool.Len(); i++ {
		t := m.pool.At(i)
		from := t.ZoneCurrent

		to := m.migrator.Migrate(t, step)
		if to == from {
			continue
		}

		t.ZoneCurrent = to
		m.bookkeeper.moved(t, from)
	}

	m.migrateGas()

	m.InvokeHook(sim.HookCtx{
		Domain: m,
		Pos:    HookPosMigrate,
		Item:   m,
		Detail: step,
	})
}

// migrateGas moves gas and the elements in it between zones. All transfers
// are computed from the state before any of them is applied.
func (m *Multizone) migrateGas() {
	if len(m.matrix.Gas) == 0 {
		return
	}

	n := len(m.zones)
	nElements := m.zones[0].NumElements()

	gas := make([]float64, n)
	metals := make([][]float64, n)

	for i, z := range m.zones {
		gas[i] = z.ISM().Mass
		metals[i] = make([]float64, nElements)

		for e := 0; e < nElements; e++ {
			metals[i][e] = z.Element(e).Mass
		}
	}

	gasDelta := make([]float64, n)
	metalDelta := make([][]float64, n)

	for i := range metalDelta {
		metalDelta[i] = make([]float64, nElements)
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			f := at(m.matrix.Gas, i, j)
			if i == j || f == 0 {
				continue
			}

			gasDelta[i] -= f * gas[i]
			gasDelta[j] += f * gas[i]

			for e := 0; e < nElements; e++ {
				metalDelta[i][e] -= f * metals[i][e]
				metalDelta[j][e] += f * metals[i][e]
			}
		}
	}

	for i, z := range m.zones {
		z.ISM().Mass += gasDelta[i]

		for e := 0; e < nElements; e++ {
			z.Element(e).Mass += metalDelta[i][e]
		}
	}
}

func (m *Multizone) spawn() error {
	step := m.zones[0].Timestep()
	k := float64(m.tracersPerZone)

	for i, z := range m.zones {
		mass := z.ISM().SFR * z.Dt() / k

		for j := 0; j < m.tracersPerZone; j++ {
			idx, err := m.pool.Spawn(Tracer{
				Mass:           mass,
				ZoneOrigin:     i,
				TimestepOrigin: step,
				ZoneCurrent:    i,
			})
			if err != nil {
				return fmt.Errorf("multizone %s at t=%g: %w",
					m.name, z.CurrentTime(), err)
			}

			m.bookkeeper.spawned(m.pool.At(idx))
		}
	}

	m.InvokeHook(sim.HookCtx{
		Domain: m,
		Pos:    HookPosSpawn,
		Item:   m,
		Detail: step,
	})

	return nil
}

// Returned computes what every zone would get back from its stars if the
// current timestep were taken now.
func (m *Multizone) Returned() []zone.Returned {
	return returned(m.bookkeeper, m.zones, m.pool, m.zones[0].Timestep())
}
