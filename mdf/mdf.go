// Package mdf accumulates stellar metallicity distribution functions: the
// distributions of [X/H] for each element and of [X/Y] for each pair of
// elements, weighted by stellar mass.
package mdf

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrBadBins is returned when bin edges are not strictly increasing or fewer
// than two.
var ErrBadBins = errors.New("mdf: invalid bins")

// DefaultBins returns edges from -3 to 1 dex in steps of 0.01.
func DefaultBins() []float64 {
	bins := make([]float64, 401)
	for i := range bins {
		bins[i] = -3 + 0.01*float64(i)
	}

	return bins
}

// MDF holds the distributions over shared bin edges.
type MDF struct {
	Bins     []float64
	Elements []string

	// Abundance[e][b] is the weight of [X/H] of element e in bin b.
	Abundance [][]float64

	// Ratio[p][b] is the weight of [X/Y] of pair p in bin b. Pairs are
	// ordered by RatioLabels.
	Ratio [][]float64
}

// New creates an empty MDF for elements binned by edges bins.
func New(bins []float64, elements []string) (*MDF, error) {
	if len(bins) < 2 || !sort.Float64sAreSorted(bins) {
		return nil, fmt.Errorf("%w: %d edges", ErrBadBins, len(bins))
	}

	for i := 1; i < len(bins); i++ {
		if bins[i] == bins[i-1] {
			return nil, fmt.Errorf("%w: repeated edge %g", ErrBadBins, bins[i])
		}
	}

	nBins := len(bins) - 1
	m := &MDF{
		Bins:      append([]float64(nil), bins...),
		Elements:  append([]string(nil), elements...),
		Abundance: make([][]float64, len(elements)),
		Ratio:     make([][]float64, numPairs(len(elements))),
	}

	for i := range m.Abundance {
		m.Abundance[i] = make([]float64, nBins)
	}

	for i := range m.Ratio {
		m.Ratio[i] = make([]float64, nBins)
	}

	return m, nil
}

func numPairs(n int) int {
	return n * (n - 1) / 2
}

// RatioLabels names the ratio distributions, such as "[fe/o]".
func (m *MDF) RatioLabels() []string {
	labels := make([]string, 0, len(m.Ratio))
	for i := 1; i < len(m.Elements); i++ {
		for j := 0; j < i; j++ {
			labels = append(labels,
				fmt.Sprintf("[%s/%s]", m.Elements[i], m.Elements[j]))
		}
	}

	return labels
}

// OnH returns [X/H] = log10(z / solar).
func OnH(z, solar float64) float64 {
	return math.Log10(z / solar)
}

// BinNumber returns the index of the bin containing x, or -1 if x is outside
// the edges.
func BinNumber(bins []float64, x float64) int {
	if math.IsNaN(x) || x < bins[0] || x >= bins[len(bins)-1] {
		return -1
	}

	return sort.Search(len(bins), func(i int) bool { return bins[i] > x }) - 1
}

// Add bins a stellar population with per-element [X/H] values onH, weighted
// by its mass. Values outside the bins are dropped.
func (m *MDF) Add(onH []float64, weight float64) {
	for e, x := range onH {
		if b := BinNumber(m.Bins, x); b >= 0 {
			m.Abundance[e][b] += weight
		}
	}

	p := 0
	for i := 1; i < len(onH); i++ {
		for j := 0; j < i; j++ {
			if b := BinNumber(m.Bins, onH[i]-onH[j]); b >= 0 {
				m.Ratio[p][b] += weight
			}
			p++
		}
	}
}

// Reset zeroes every distribution.
func (m *MDF) Reset() {
	for _, d := range m.Abundance {
		clear(d)
	}

	for _, d := range m.Ratio {
		clear(d)
	}
}

// Normalize scales every distribution so that it integrates to one over the
// bins. Empty distributions stay zero.
func (m *MDF) Normalize() {
	for _, d := range m.Abundance {
		m.normalize(d)
	}

	for _, d := range m.Ratio {
		m.normalize(d)
	}
}

func (m *MDF) normalize(d []float64) {
	total := 0.0
	for b, v := range d {
		total += v * (m.Bins[b+1] - m.Bins[b])
	}

	if total == 0 {
		return
	}

	for b := range d {
		d[b] /= total
	}
}

// Integral returns the integral of distribution d over the bins.
func (m *MDF) Integral(d []float64) float64 {
	total := 0.0
	for b, v := range d {
		total += v * (m.Bins[b+1] - m.Bins[b])
	}

	return total
}
