package multizone

import (
	"fmt"
	"math"
)

// MigrationMatrix gives the per-timestep movement between zones. Gas[i][j]
// is the fraction of the gas of zone i moving into zone j, and Tracers[i][j]
// the probability that a tracer in zone i moves to zone j. Diagonal entries
// are ignored: whatever does not move stays. An empty matrix moves nothing.
type MigrationMatrix struct {
	Gas     [][]float64
	Tracers [][]float64
}

// NewMigrationMatrix returns an n by n matrix that moves nothing.
func NewMigrationMatrix(n int) MigrationMatrix {
	return MigrationMatrix{
		Gas:     square(n),
		Tracers: square(n),
	}
}

func square(n int) [][]float64 {
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
	}

	return m
}

// Validate checks that both matrices are n by n with off-diagonal entries
// in [0, 1] summing to at most 1 in each row.
func (m MigrationMatrix) Validate(n int) error {
	if err := validateMatrix("gas", m.Gas, n); err != nil {
		return err
	}

	return validateMatrix("tracer", m.Tracers, n)
}

// rowSumTolerance absorbs rounding in rows meant to sum to exactly one.
const rowSumTolerance = 1e-12

func validateMatrix(kind string, m [][]float64, n int) error {
	if len(m) == 0 {
		return nil
	}

	if len(m) != n {
		return fmt.Errorf("%w: %s matrix has %d rows for %d zones",
			ErrBadMigration, kind, len(m), n)
	}

	for i, row := range m {
		if len(row) != n {
			return fmt.Errorf("%w: %s matrix row %d has %d entries",
				ErrBadMigration, kind, i, len(row))
		}

		sum := 0.0
		for j, p := range row {
			if i == j {
				continue
			}

			if !(p >= 0 && p <= 1) {
				return fmt.Errorf("%w: %s[%d][%d] = %g",
					ErrBadMigration, kind, i, j, p)
			}

			sum += p
		}

		if sum > 1+rowSumTolerance || math.IsNaN(sum) {
			return fmt.Errorf("%w: %s row %d moves %g",
				ErrBadMigration, kind, i, sum)
		}
	}

	return nil
}

// at returns entry [i][j], treating an empty matrix as zero.
func at(m [][]float64, i, j int) float64 {
	if len(m) == 0 {
		return 0
	}

	return m[i][j]
}
