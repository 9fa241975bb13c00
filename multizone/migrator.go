package multizone

import "math/rand/v2"

// A Migrator decides where tracers go.
type Migrator interface {
	// Migrate returns the zone that tracer t is in after timestep step.
	Migrate(t *Tracer, step int) int
}

// MatrixMigrator moves tracers at random following the tracer probabilities
// of a migration matrix.
type MatrixMigrator struct {
	cumulative [][]float64
	targets    [][]int
	rng        *rand.Rand
}

// NewMatrixMigrator creates a migrator drawing from a generator seeded with
// seed. A nil matrix never moves tracers.
func NewMatrixMigrator(probabilities [][]float64, seed uint64) *MatrixMigrator {
	m := &MatrixMigrator{
		cumulative: make([][]float64, len(probabilities)),
		targets:    make([][]int, len(probabilities)),
		rng:        rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}

	for i, row := range probabilities {
		sum := 0.0
		for j, p := range row {
			if i == j || p == 0 {
				continue
			}

			sum += p
			m.cumulative[i] = append(m.cumulative[i], sum)
			m.targets[i] = append(m.targets[i], j)
		}
	}

	return m
}

// Migrate implements Migrator.
func (m *MatrixMigrator) Migrate(t *Tracer, _ int) int {
	from := t.ZoneCurrent
	if from >= len(m.cumulative) || len(m.cumulative[from]) == 0 {
		return from
	}

	u := m.rng.Float64()
	for k, c := range m.cumulative[from] {
		if u < c {
			return m.targets[from][k]
		}
	}

	return from
}
