package yields

import (
	"fmt"
	"sort"
)

// Interp1D interpolates a core collapse yield linearly in metallicity,
// extrapolating past either end of the grid.
type Interp1D struct {
	z      []float64
	yields []float64
}

// NewInterp1D creates an interpolator from an increasing metallicity axis and
// the yields at those metallicities.
func NewInterp1D(z, yields []float64) (*Interp1D, error) {
	if len(z) < 2 || len(z) != len(yields) || !increasing(z) {
		return nil, fmt.Errorf("%w: %d metallicities, %d yields",
			ErrBadGrid, len(z), len(yields))
	}

	return &Interp1D{z: z, yields: yields}, nil
}

// Yield implements CCSNeModel.
func (p *Interp1D) Yield(z float64) float64 {
	i := bracket(p.z, z)
	return lerp(p.z[i], p.z[i+1], p.yields[i], p.yields[i+1], z)
}

// AGBGrid interpolates AGB yields bilinearly in mass and metallicity,
// extrapolating linearly outside the grid. Yields[i][j] is the yield at
// Masses[i] and Metallicities[j].
type AGBGrid struct {
	masses        []float64
	metallicities []float64
	yields        [][]float64
}

// NewAGBGrid validates and creates a grid.
func NewAGBGrid(
	masses, metallicities []float64,
	yields [][]float64,
) (*AGBGrid, error) {
	if len(masses) < 2 || len(metallicities) < 2 ||
		!increasing(masses) || !increasing(metallicities) ||
		len(yields) != len(masses) {
		return nil, ErrBadGrid
	}

	for _, row := range yields {
		if len(row) != len(metallicities) {
			return nil, fmt.Errorf("%w: ragged yield rows", ErrBadGrid)
		}
	}

	return &AGBGrid{
		masses:        masses,
		metallicities: metallicities,
		yields:        yields,
	}, nil
}

// Yield implements AGBModel.
func (g *AGBGrid) Yield(z, m float64) float64 {
	i := bracket(g.masses, m)
	j := bracket(g.metallicities, z)

	lowMass := lerp(g.metallicities[j], g.metallicities[j+1],
		g.yields[i][j], g.yields[i][j+1], z)
	highMass := lerp(g.metallicities[j], g.metallicities[j+1],
		g.yields[i+1][j], g.yields[i+1][j+1], z)

	return lerp(g.masses[i], g.masses[i+1], lowMass, highMass, m)
}

// bracket returns i such that axis[i] <= x < axis[i+1], clamped so that
// values off either end use the outermost interval.
func bracket(axis []float64, x float64) int {
	i := sort.SearchFloat64s(axis, x) - 1
	if i < 0 {
		i = 0
	}

	if i > len(axis)-2 {
		i = len(axis) - 2
	}

	return i
}

func lerp(x0, x1, y0, y1, x float64) float64 {
	return y0 + (y1-y0)*(x-x0)/(x1-x0)
}

func increasing(xs []float64) bool {
	for i := 1; i < len(xs); i++ {
		if !(xs[i] > xs[i-1]) {
			return false
		}
	}

	return true
}
